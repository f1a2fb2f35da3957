package nbt

import (
	"unicode/utf16"

	"github.com/scigolib/nbt/internal/utils"
)

// EncodeModifiedUTF8 encodes a Go string as JVM Modified UTF-8 bytes: NUL as
// the two-byte overlong form C0 80, the BMP as 1-3 bytes, and code points
// outside the BMP as a CESU-8 surrogate pair (each half encoded as its own
// 3-byte sequence). This is deliberately independent of the standard
// library's UTF-8 routines, which encode NUL as a single zero byte and
// supra-BMP code points as 4-byte UTF-8 sequences — both wrong for this wire
// format.
func EncodeModifiedUTF8(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units)*3)
	for _, cu := range units {
		out = appendModifiedUTF8Unit(out, cu)
	}
	return out
}

func appendModifiedUTF8Unit(out []byte, cu uint16) []byte {
	switch {
	case cu == 0x0000:
		return append(out, 0xC0, 0x80)
	case cu <= 0x007F:
		return append(out, byte(cu))
	case cu <= 0x07FF:
		return append(out,
			0xC0|byte(cu>>6),
			0x80|byte(cu&0x3F),
		)
	default:
		return append(out,
			0xE0|byte(cu>>12),
			0x80|byte((cu>>6)&0x3F),
			0x80|byte(cu&0x3F),
		)
	}
}

// DecodeModifiedUTF8 decodes JVM Modified UTF-8 bytes back into a Go string,
// rejecting malformed continuation bytes, overlong forms (except the C0 80
// NUL special case), truncated sequences, and unrecognized leading bytes.
// Surrogate halves decoded from 3-byte sequences are recombined via
// unicode/utf16 without validating pairing; an unpaired surrogate becomes
// the Unicode replacement character in the resulting Go string, since Go
// strings cannot represent an unpaired surrogate code point directly.
func DecodeModifiedUTF8(b []byte) (string, error) {
	units := make([]uint16, 0, len(b))

	i := 0
	for i < len(b) {
		b0 := b[i]

		switch {
		case b0 == 0x00:
			return "", utils.NewError(utils.KindInvalidEncoding, "raw NUL byte at offset %d", i)

		case b0&0x80 == 0x00: // 0xxxxxxx
			units = append(units, uint16(b0))
			i++

		case b0&0xE0 == 0xC0: // 110xxxxx
			if i+1 >= len(b) {
				return "", utils.NewError(utils.KindInvalidEncoding, "truncated 2-byte sequence at offset %d", i)
			}
			b1 := b[i+1]
			if b1&0xC0 != 0x80 {
				return "", utils.NewError(utils.KindInvalidEncoding, "bad continuation byte at offset %d", i+1)
			}
			value := (uint16(b0&0x1F) << 6) | uint16(b1&0x3F)
			if value < 0x80 && !(b0 == 0xC0 && b1 == 0x80) {
				return "", utils.NewError(utils.KindInvalidEncoding, "overlong 2-byte sequence at offset %d", i)
			}
			units = append(units, value)
			i += 2

		case b0&0xF0 == 0xE0: // 1110xxxx
			if i+2 >= len(b) {
				return "", utils.NewError(utils.KindInvalidEncoding, "truncated 3-byte sequence at offset %d", i)
			}
			b1, b2 := b[i+1], b[i+2]
			if b1&0xC0 != 0x80 || b2&0xC0 != 0x80 {
				return "", utils.NewError(utils.KindInvalidEncoding, "bad continuation byte at offset %d", i+1)
			}
			value := (uint16(b0&0x0F) << 12) | (uint16(b1&0x3F) << 6) | uint16(b2&0x3F)
			if value < 0x800 {
				return "", utils.NewError(utils.KindInvalidEncoding, "overlong 3-byte sequence at offset %d", i)
			}
			units = append(units, value)
			i += 3

		default:
			return "", utils.NewError(utils.KindInvalidEncoding, "unrecognized leading byte 0x%02x at offset %d", b0, i)
		}
	}

	return string(utf16.Decode(units)), nil
}
