package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckMultiplyOverflow(t *testing.T) {
	require.NoError(t, CheckMultiplyOverflow(0, math.MaxUint64))
	require.NoError(t, CheckMultiplyOverflow(100, 4))
	require.Error(t, CheckMultiplyOverflow(math.MaxUint64/4, 8))
}

func TestSafeMultiply(t *testing.T) {
	v, err := SafeMultiply(100, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(400), v)

	_, err = SafeMultiply(math.MaxUint64, 2)
	require.Error(t, err)
}

func TestCheckPayloadSize(t *testing.T) {
	tests := []struct {
		name     string
		count    int32
		elemSize int
		wantErr  bool
		want     int
	}{
		{name: "typical int32 array", count: 1000, elemSize: 4, want: 4000},
		{name: "zero length", count: 0, elemSize: 8, want: 0},
		{name: "negative length", count: -1, elemSize: 1, wantErr: true},
		{name: "overflowing length", count: math.MaxInt32, elemSize: 8, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckPayloadSize(tt.count, tt.elemSize)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
