package binary

import (
	"crypto/ed25519"
	"encoding/binary"
)

// Uint128 is an unsigned 128-bit integer stored as two 64-bit halves.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

func PutUint8(dst []byte, offset int, v uint8) error {
	if err := checkPut(dst, offset, Uint8Size); err != nil {
		return err
	}
	dst[offset] = v
	return nil
}

func GetUint8(src []byte, offset int) (uint8, error) {
	if err := checkGet(src, offset, Uint8Size); err != nil {
		return 0, err
	}
	return src[offset], nil
}

func PutUint16(dst []byte, offset int, v uint16) error {
	if err := checkPut(dst, offset, Uint16Size); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(dst[offset:], v)
	return nil
}

func GetUint16(src []byte, offset int) (uint16, error) {
	if err := checkGet(src, offset, Uint16Size); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(src[offset:]), nil
}

func PutUint32(dst []byte, offset int, v uint32) error {
	if err := checkPut(dst, offset, Uint32Size); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(dst[offset:], v)
	return nil
}

func GetUint32(src []byte, offset int) (uint32, error) {
	if err := checkGet(src, offset, Uint32Size); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(src[offset:]), nil
}

func PutUint64(dst []byte, offset int, v uint64) error {
	if err := checkPut(dst, offset, Uint64Size); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(dst[offset:], v)
	return nil
}

func GetUint64(src []byte, offset int) (uint64, error) {
	if err := checkGet(src, offset, Uint64Size); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(src[offset:]), nil
}

// PutUint128 writes the low half first, matching the little-endian u128 layout.
func PutUint128(dst []byte, offset int, v Uint128) error {
	if err := checkPut(dst, offset, Uint128Size); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(dst[offset:], v.Lo)
	binary.LittleEndian.PutUint64(dst[offset+8:], v.Hi)
	return nil
}

func GetUint128(src []byte, offset int) (Uint128, error) {
	if err := checkGet(src, offset, Uint128Size); err != nil {
		return Uint128{}, err
	}
	return Uint128{
		Lo: binary.LittleEndian.Uint64(src[offset:]),
		Hi: binary.LittleEndian.Uint64(src[offset+8:]),
	}, nil
}

func PutBool(dst []byte, offset int, v bool) error {
	var b uint8
	if v {
		b = 1
	}
	return PutUint8(dst, offset, b)
}

// GetBool treats any non-zero byte as true.
func GetBool(src []byte, offset int) (bool, error) {
	b, err := GetUint8(src, offset)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// PutBytes copies v into a width-byte slot, zero filling any remainder.
func PutBytes(dst []byte, offset, width int, v []byte) error {
	if len(v) > width {
		return ErrLayoutOverflow
	}
	if err := checkPut(dst, offset, width); err != nil {
		return err
	}

	n := copy(dst[offset:offset+width], v)
	clear(dst[offset+n : offset+width])
	return nil
}

// GetBytes returns a copy of the width-byte slot.
func GetBytes(src []byte, offset, width int) ([]byte, error) {
	if err := checkGet(src, offset, width); err != nil {
		return nil, err
	}

	b := make([]byte, width)
	copy(b, src[offset:offset+width])
	return b, nil
}

// PutKey writes a 32-byte address. A nil key is written as all zeros.
func PutKey(dst []byte, offset int, key ed25519.PublicKey) error {
	if len(key) != 0 && len(key) != KeySize {
		return ErrLayoutOverflow
	}
	return PutBytes(dst, offset, KeySize, key)
}

func GetKey(src []byte, offset int) (ed25519.PublicKey, error) {
	b, err := GetBytes(src, offset, KeySize)
	if err != nil {
		return nil, err
	}
	return ed25519.PublicKey(b), nil
}
