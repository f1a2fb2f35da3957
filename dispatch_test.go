package nbt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadTagKindByteRejectsUnknown(t *testing.T) {
	br := newByteReader(bytes.NewReader([]byte{0x63}))
	_, err := readTagKindByte(br)
	require.Error(t, err)
}

func TestReadNameEmptyLength(t *testing.T) {
	br := newByteReader(bytes.NewReader([]byte{0x00, 0x00}))
	name, err := readName(br)
	require.NoError(t, err)
	require.Equal(t, "", name)
}

func TestReadListMetadataRejectsEndWithLength(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(byte(End))
	buf.Write([]byte{0x00, 0x00, 0x00, 0x01})
	br := newByteReader(&buf)
	_, _, err := readListMetadata(br)
	require.Error(t, err)
}

func TestReadListMetadataRejectsNegativeLength(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(byte(Int32))
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	br := newByteReader(&buf)
	_, _, err := readListMetadata(br)
	require.Error(t, err)
}

func TestReadFullNodeCompoundDuplicateName(t *testing.T) {
	var buf bytes.Buffer
	bw := newByteWriter(&buf)
	// x=1
	require.NoError(t, bw.writeU8(byte(Int8)))
	require.NoError(t, writeName(bw, "x"))
	require.NoError(t, bw.writeI8(1))
	// x=2 again
	require.NoError(t, bw.writeU8(byte(Int8)))
	require.NoError(t, writeName(bw, "x"))
	require.NoError(t, bw.writeI8(2))
	require.NoError(t, bw.writeU8(byte(End)))

	br := newByteReader(&buf)
	_, err := readFullNode(br, Compound)
	require.Error(t, err)
}

func TestReadPayloadListContentKindPropagates(t *testing.T) {
	var buf bytes.Buffer
	bw := newByteWriter(&buf)
	require.NoError(t, bw.writeI32(10))
	require.NoError(t, bw.writeI32(20))

	br := newByteReader(&buf)
	node, err := readPayload(br, List, Int32, 2)
	require.NoError(t, err)
	require.Equal(t, Int32, node.ListKind)
	children, _ := node.Children()
	require.Len(t, children, 2)
	v0, _ := children[0].Int32()
	require.Equal(t, int32(10), v0)
}

func TestSkipPayloadCompoundMatchesReadPayload(t *testing.T) {
	var buf bytes.Buffer
	bw := newByteWriter(&buf)
	require.NoError(t, bw.writeU8(byte(Int32)))
	require.NoError(t, writeName(bw, "x"))
	require.NoError(t, bw.writeI32(42))
	require.NoError(t, bw.writeU8(byte(End)))
	tail := buf.Bytes()

	br := newByteReader(bytes.NewReader(tail))
	require.NoError(t, skipPayload(br, Compound, 0, 0))

	// Nothing should remain after the skip.
	_, err := br.readU8()
	require.Error(t, err)
}

func TestSkipPayloadCompoundRejectsDuplicateName(t *testing.T) {
	var buf bytes.Buffer
	bw := newByteWriter(&buf)
	require.NoError(t, bw.writeU8(byte(Int8)))
	require.NoError(t, writeName(bw, "x"))
	require.NoError(t, bw.writeI8(1))
	require.NoError(t, bw.writeU8(byte(Int8)))
	require.NoError(t, writeName(bw, "x"))
	require.NoError(t, bw.writeI8(2))
	require.NoError(t, bw.writeU8(byte(End)))

	br := newByteReader(&buf)
	err := skipPayload(br, Compound, 0, 0)
	require.Error(t, err)
}

func TestSkipPayloadArrayDoesNotMaterialize(t *testing.T) {
	const n = 1_000_000
	var buf bytes.Buffer
	bw := newByteWriter(&buf)
	require.NoError(t, bw.writeI32(n))
	buf.Write(make([]byte, n*4))

	cr := &countingReader{r: bytes.NewReader(buf.Bytes())}
	br := newByteReader(cr)
	require.NoError(t, skipPayload(br, Int32Array, 0, 0))
	require.LessOrEqual(t, cr.maxReadSize, maxSkipChunk)
}

// countingReader tracks the largest single Read request it served, letting
// tests assert a skip never buffers more than maxSkipChunk at once.
type countingReader struct {
	r           *bytes.Reader
	maxReadSize int
}

func (c *countingReader) Read(p []byte) (int, error) {
	if len(p) > c.maxReadSize {
		c.maxReadSize = len(p)
	}
	return c.r.Read(p)
}
