package binary

import (
	"github.com/pkg/errors"
)

var (
	// ErrLayoutOverflow indicates the destination buffer cannot hold a fixed-width field.
	ErrLayoutOverflow = errors.New("layout overflow")

	// ErrLayoutUnderflow indicates the source buffer is shorter than a fixed-width field.
	ErrLayoutUnderflow = errors.New("layout underflow")

	// ErrStringTooLong indicates an encoded string does not fit its fixed slot.
	ErrStringTooLong = errors.New("string too long")

	// ErrInvalidString indicates a string contains a byte reserved by its encoding.
	ErrInvalidString = errors.New("invalid string")

	// ErrMalformedMeta indicates a packed string group has fewer segments than required.
	ErrMalformedMeta = errors.New("malformed meta")

	// ErrAccountTooShort indicates account data is shorter than the schema span.
	ErrAccountTooShort = errors.New("account data too short")
)

// The bounds checks compare against len-width so offsets near math.MaxInt
// cannot wrap around.
func checkPut(dst []byte, offset, width int) error {
	if offset < 0 || width < 0 || width > len(dst) || offset > len(dst)-width {
		return errors.Wrapf(ErrLayoutOverflow, "need %d bytes at offset %d, have %d", width, offset, len(dst))
	}
	return nil
}

func checkGet(src []byte, offset, width int) error {
	if offset < 0 || width < 0 || width > len(src) || offset > len(src)-width {
		return errors.Wrapf(ErrLayoutUnderflow, "need %d bytes at offset %d, have %d", width, offset, len(src))
	}
	return nil
}

// CheckAccountSize returns ErrAccountTooShort if data cannot hold span bytes.
// Trailing bytes beyond span are permitted.
func CheckAccountSize(data []byte, span int) error {
	if len(data) < span {
		return errors.Wrapf(ErrAccountTooShort, "got %d bytes, need at least %d", len(data), span)
	}
	return nil
}
