package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// Sizes mirror how byteReader.skip actually draws from the pool: anything up
// to stream.go's 1 MiB chunk cap, including the small lengths typical of a
// skipped String or Int8Array payload. The zero-length case covers
// GetBuffer(0) directly; skip itself returns before touching the pool when
// asked to skip zero bytes.
func TestGetBuffer(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		checkMinCap int
	}{
		{name: "skip over a string payload", size: 64, checkMinCap: 64},
		{name: "skip over an int32 array chunk", size: 4096, checkMinCap: 4096},
		{name: "skip chunk at the 1 MiB cap", size: 1 << 20, checkMinCap: 1 << 20},
		{name: "zero-length skip", size: 0, checkMinCap: 0},
		{name: "single-byte skip", size: 1, checkMinCap: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := GetBuffer(tt.size)
			require.NotNil(t, buf)
			require.Equal(t, tt.size, len(buf), "buffer length should match requested size")
			require.GreaterOrEqual(t, cap(buf), tt.checkMinCap, "buffer capacity should be at least requested size")
			ReleaseBuffer(buf)
		})
	}
}

func TestReleaseBuffer(t *testing.T) {
	buf := GetBuffer(1024)
	require.NotNil(t, buf)
	require.Equal(t, 1024, len(buf))

	for i := range buf {
		buf[i] = byte(i % 256)
	}
	ReleaseBuffer(buf)

	buf2 := GetBuffer(512)
	require.NotNil(t, buf2)
	require.Equal(t, 512, len(buf2))
	ReleaseBuffer(buf2)
}

func TestBufferPoolReuse(t *testing.T) {
	buf1 := GetBuffer(2048)
	require.Equal(t, 2048, len(buf1))
	buf1[0] = 0xAB
	buf1[2047] = 0xCD
	ReleaseBuffer(buf1)

	buf2 := GetBuffer(2048)
	require.Equal(t, 2048, len(buf2))
	require.GreaterOrEqual(t, cap(buf2), 2048)
	ReleaseBuffer(buf2)
}

// TestBufferPoolConcurrentSkips simulates several independent readers each
// skipping their own large array payload at once: distinct Reader instances
// over distinct streams are safe to use concurrently even though no single
// Reader is, and they all draw from the same pool.
func TestBufferPoolConcurrentSkips(t *testing.T) {
	const readers = 10
	const chunksPerReader = 100

	done := make(chan bool, readers)
	for g := 0; g < readers; g++ {
		go func() {
			for i := 0; i < chunksPerReader; i++ {
				size := 1024 + (i % 4096)
				buf := GetBuffer(size)
				require.Equal(t, size, len(buf))
				for j := range buf {
					buf[j] = byte(j)
				}
				ReleaseBuffer(buf)
			}
			done <- true
		}()
	}

	for g := 0; g < readers; g++ {
		<-done
	}
}

func BenchmarkGetBuffer(b *testing.B) {
	sizes := []int{512, 1024, 4096, 1 << 20}

	for _, size := range sizes {
		b.Run(strconv.Itoa(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				buf := GetBuffer(size)
				ReleaseBuffer(buf)
			}
		})
	}
}

func BenchmarkGetBufferNoPool(b *testing.B) {
	sizes := []int{512, 1024, 4096, 1 << 20}

	for _, size := range sizes {
		b.Run(strconv.Itoa(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = make([]byte, size)
			}
		})
	}
}
