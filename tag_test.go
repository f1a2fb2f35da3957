package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagKindValid(t *testing.T) {
	for k := End; k <= Int64Array; k++ {
		require.True(t, k.Valid(), "kind %d should be valid", k)
	}
	require.False(t, TagKind(13).Valid())
	require.False(t, TagKind(255).Valid())
}

func TestTagKindString(t *testing.T) {
	require.Equal(t, "Int32 (0x03)", Int32.String())
	require.Equal(t, "Compound (0x0a)", Compound.String())
	require.Equal(t, "Unknown (0xff)", TagKind(255).String())
}

func TestTagKindIsContainer(t *testing.T) {
	require.True(t, List.IsContainer())
	require.True(t, Compound.IsContainer())
	for _, k := range []TagKind{End, Int8, Int16, Int32, Int64, Float32, Float64, String, Int8Array, Int32Array, Int64Array} {
		require.False(t, k.IsContainer(), "%s should not be a container", k)
	}
}

func TestTagKindElemSize(t *testing.T) {
	tests := []struct {
		kind TagKind
		want int
	}{
		{Int8, 1}, {Int8Array, 1},
		{Int16, 2},
		{Int32, 4}, {Float32, 4}, {Int32Array, 4},
		{Int64, 8}, {Float64, 8}, {Int64Array, 8},
		{String, 0}, {List, 0}, {Compound, 0}, {End, 0},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.kind.elemSize(), "%s", tt.kind)
	}
}
