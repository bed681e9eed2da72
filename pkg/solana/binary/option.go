package binary

import (
	"crypto/ed25519"
)

// The Mint and NFT account schemas tag optional addresses with a 1-byte
// boolean, while MintMeta uses a 4-byte integer. Both are kept as distinct
// codecs so each schema round trips byte-for-byte.

// PutOptionalKey writes a 1-byte presence tag followed by a 32-byte key slot.
// A nil key writes tag 0 and zeroes the slot.
func PutOptionalKey(dst []byte, offset int, key ed25519.PublicKey) error {
	if len(key) != 0 && len(key) != KeySize {
		return ErrLayoutOverflow
	}
	if err := checkPut(dst, offset, OptionalKeySize); err != nil {
		return err
	}

	_ = PutBool(dst, offset, len(key) > 0)
	return PutKey(dst, offset+BoolSize, key)
}

// GetOptionalKey returns nil whenever the tag is zero, regardless of the
// bytes in the key slot.
func GetOptionalKey(src []byte, offset int) (ed25519.PublicKey, error) {
	if err := checkGet(src, offset, OptionalKeySize); err != nil {
		return nil, err
	}

	present, _ := GetBool(src, offset)
	if !present {
		return nil, nil
	}
	return GetKey(src, offset+BoolSize)
}

// PutCOptionKey writes a 4-byte little-endian presence tag followed by a
// 32-byte key slot.
func PutCOptionKey(dst []byte, offset int, key ed25519.PublicKey) error {
	if len(key) != 0 && len(key) != KeySize {
		return ErrLayoutOverflow
	}
	if err := checkPut(dst, offset, COptionKeySize); err != nil {
		return err
	}

	var tag uint32
	if len(key) > 0 {
		tag = 1
	}
	_ = PutUint32(dst, offset, tag)
	return PutKey(dst, offset+Uint32Size, key)
}

// GetCOptionKey treats any non-zero tag as present.
func GetCOptionKey(src []byte, offset int) (ed25519.PublicKey, error) {
	if err := checkGet(src, offset, COptionKeySize); err != nil {
		return nil, err
	}

	tag, _ := GetUint32(src, offset)
	if tag == 0 {
		return nil, nil
	}
	return GetKey(src, offset+Uint32Size)
}
