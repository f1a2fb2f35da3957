package nbt

import (
	"io"

	kgzip "github.com/klauspost/compress/gzip"

	"github.com/scigolib/nbt/internal/utils"
)

// gzipMagic is the two-byte signature that opens every GZip stream.
var gzipMagic = [2]byte{0x1F, 0x8B}

// Compression selects whether Open treats its source as GZip-wrapped.
type Compression int

const (
	// Uncompressed reads/writes the raw NBT byte stream.
	Uncompressed Compression = iota
	// Compressed wraps the stream in GZip unconditionally.
	Compressed
	// AutoDetect peeks the stream's first two bytes and transparently
	// unwraps GZip if they match the GZip magic number. Requires a
	// seekable source.
	AutoDetect
)

// detectGzip peeks the next two bytes of r and reports whether they are the
// GZip magic number, restoring the original stream position exactly
// afterward regardless of the outcome.
func detectGzip(r io.ReadSeeker) (bool, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, utils.WrapError(utils.KindIO, "locating stream position", err)
	}

	var peek [2]byte
	n, readErr := io.ReadFull(r, peek[:])

	if _, seekErr := r.Seek(start, io.SeekStart); seekErr != nil {
		return false, utils.WrapError(utils.KindIO, "rewinding after GZip probe", seekErr)
	}

	if readErr != nil {
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			return false, nil
		}
		return false, utils.WrapError(utils.KindIO, "probing for GZip signature", readErr)
	}

	return n == 2 && peek == gzipMagic, nil
}

// newGzipReader wraps r in a GZip decompressor using the third-party
// klauspost/compress codec rather than the standard library's, per
// DESIGN.md's grounding for this component.
func newGzipReader(r io.Reader) (io.ReadCloser, error) {
	gr, err := kgzip.NewReader(r)
	if err != nil {
		return nil, utils.WrapError(utils.KindIO, "opening GZip stream", err)
	}
	return gr, nil
}

// newGzipWriter wraps w in a GZip compressor at the default compression level.
func newGzipWriter(w io.Writer) io.WriteCloser {
	return kgzip.NewWriter(w)
}
