package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/scigolib/nbt/internal/utils"
)

// maxSkipChunk bounds how much of a non-seekable stream is buffered per
// iteration while skipping, so skipping an arbitrarily large payload never
// allocates proportionally to its size.
const maxSkipChunk = 1 << 20 // 1 MiB

// byteReader provides big-endian fixed-width reads over an abstract byte
// source, retrying short reads rather than treating them as success.
type byteReader struct {
	r io.Reader
}

func newByteReader(r io.Reader) *byteReader {
	return &byteReader{r: r}
}

// readExact reads exactly n bytes or fails with UnexpectedEnd.
func (br *byteReader) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(br.r, buf); err != nil {
		return nil, utils.WrapError(utils.KindUnexpectedEnd, fmt.Sprintf("reading %d bytes", n), err)
	}
	return buf, nil
}

func (br *byteReader) readU8() (uint8, error) {
	b, err := br.readExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (br *byteReader) readI8() (int8, error) {
	v, err := br.readU8()
	return int8(v), err
}

func (br *byteReader) readU16() (uint16, error) {
	b, err := br.readExact(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (br *byteReader) readI16() (int16, error) {
	v, err := br.readU16()
	return int16(v), err
}

func (br *byteReader) readU32() (uint32, error) {
	b, err := br.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (br *byteReader) readI32() (int32, error) {
	v, err := br.readU32()
	return int32(v), err
}

func (br *byteReader) readU64() (uint64, error) {
	b, err := br.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (br *byteReader) readI64() (int64, error) {
	v, err := br.readU64()
	return int64(v), err
}

func (br *byteReader) readF32() (float32, error) {
	v, err := br.readU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (br *byteReader) readF64() (float64, error) {
	v, err := br.readU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// skip advances n bytes, using Seek when the underlying reader supports it
// and otherwise consuming n bytes through a bounded, pooled buffer.
func (br *byteReader) skip(n int64) error {
	if n < 0 {
		return utils.NewError(utils.KindValueOutOfRange, "negative skip length %d", n)
	}
	if n == 0 {
		return nil
	}

	if seeker, ok := br.r.(io.Seeker); ok {
		if _, err := seeker.Seek(n, io.SeekCurrent); err != nil {
			return utils.WrapError(utils.KindIO, "seeking past payload", err)
		}
		return nil
	}

	chunkSize := int64(maxSkipChunk)
	if n < chunkSize {
		chunkSize = n
	}
	buf := utils.GetBuffer(int(chunkSize))
	defer utils.ReleaseBuffer(buf)

	remaining := n
	for remaining > 0 {
		take := int64(len(buf))
		if remaining < take {
			take = remaining
		}
		if _, err := io.ReadFull(br.r, buf[:take]); err != nil {
			return utils.WrapError(utils.KindUnexpectedEnd, "skipping payload", err)
		}
		remaining -= take
	}
	return nil
}

// byteWriter provides big-endian fixed-width writes over an abstract byte sink.
type byteWriter struct {
	w io.Writer
}

func newByteWriter(w io.Writer) *byteWriter {
	return &byteWriter{w: w}
}

func (bw *byteWriter) writeBytes(b []byte) error {
	if _, err := bw.w.Write(b); err != nil {
		return utils.WrapError(utils.KindIO, "writing bytes", err)
	}
	return nil
}

func (bw *byteWriter) writeU8(v uint8) error {
	return bw.writeBytes([]byte{v})
}

func (bw *byteWriter) writeI8(v int8) error {
	return bw.writeU8(uint8(v))
}

func (bw *byteWriter) writeU16(v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return bw.writeBytes(b[:])
}

func (bw *byteWriter) writeI16(v int16) error {
	return bw.writeU16(uint16(v))
}

func (bw *byteWriter) writeU32(v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return bw.writeBytes(b[:])
}

func (bw *byteWriter) writeI32(v int32) error {
	return bw.writeU32(uint32(v))
}

func (bw *byteWriter) writeU64(v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return bw.writeBytes(b[:])
}

func (bw *byteWriter) writeI64(v int64) error {
	return bw.writeU64(uint64(v))
}

func (bw *byteWriter) writeF32(v float32) error {
	return bw.writeU32(math.Float32bits(v))
}

func (bw *byteWriter) writeF64(v float64) error {
	return bw.writeU64(math.Float64bits(v))
}
