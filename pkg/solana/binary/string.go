package binary

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
)

const separator = '\n'

// PutFixedString writes the UTF-8 bytes of v into a width-byte slot and zero
// pads the remainder. A value exactly width bytes long carries no terminator.
func PutFixedString(dst []byte, offset, width int, v string) error {
	if len(v) > width {
		return errors.Wrapf(ErrStringTooLong, "%d bytes exceeds slot of %d", len(v), width)
	}
	return PutBytes(dst, offset, width, []byte(v))
}

// GetFixedString reads a width-byte slot and truncates at the first zero byte.
// A slot without a zero byte is a string that fills the whole slot.
func GetFixedString(src []byte, offset, width int) (string, error) {
	if err := checkGet(src, offset, width); err != nil {
		return "", err
	}
	return string(trimAtZero(src[offset : offset+width])), nil
}

// PutTerminatedString writes v followed by a newline terminator into a
// width-byte slot, zero padding the remainder. When v is exactly width bytes
// the terminator is omitted.
func PutTerminatedString(dst []byte, offset, width int, v string) error {
	if strings.IndexByte(v, separator) >= 0 {
		return errors.Wrap(ErrInvalidString, "value contains a newline")
	}
	if len(v) > width {
		return errors.Wrapf(ErrStringTooLong, "%d bytes exceeds slot of %d", len(v), width)
	}
	if len(v) == width {
		return PutBytes(dst, offset, width, []byte(v))
	}
	return PutBytes(dst, offset, width, []byte(v+string(separator)))
}

// GetTerminatedString reads up to the first newline or zero byte, whichever
// comes first, or the entire slot when neither is present.
func GetTerminatedString(src []byte, offset, width int) (string, error) {
	if err := checkGet(src, offset, width); err != nil {
		return "", err
	}

	slot := trimAtZero(src[offset : offset+width])
	if i := bytes.IndexByte(slot, separator); i >= 0 {
		slot = slot[:i]
	}
	return string(slot), nil
}

// PutPackedStrings joins values with newlines, appends a trailing newline and
// zero pads the result into a width-byte slot. Values may not contain a
// newline or a zero byte.
func PutPackedStrings(dst []byte, offset, width int, values ...string) error {
	var sb strings.Builder
	for _, v := range values {
		if strings.IndexByte(v, separator) >= 0 {
			return errors.Wrap(ErrInvalidString, "value contains a newline")
		}
		if strings.IndexByte(v, 0) >= 0 {
			return errors.Wrap(ErrInvalidString, "value contains a zero byte")
		}
		sb.WriteString(v)
		sb.WriteByte(separator)
	}

	packed := sb.String()
	if len(packed) > width {
		return errors.Wrapf(ErrStringTooLong, "packed %d bytes exceeds slot of %d", len(packed), width)
	}
	return PutBytes(dst, offset, width, []byte(packed))
}

// GetPackedStrings splits a width-byte slot on newlines and returns the first
// n segments. A trailing empty segment after the final newline does not count.
func GetPackedStrings(src []byte, offset, width, n int) ([]string, error) {
	if err := checkGet(src, offset, width); err != nil {
		return nil, err
	}

	text := string(trimAtZero(src[offset : offset+width]))
	segments := strings.Split(text, string(separator))
	if len(segments) > 0 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	if len(segments) < n {
		return nil, errors.Wrapf(ErrMalformedMeta, "got %d segments, need %d", len(segments), n)
	}
	return segments[:n], nil
}

func trimAtZero(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}
