package binary

import (
	"bytes"
	"crypto/ed25519"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	l := NewLayout(
		Field{Name: "a", Width: KeySize},
		Field{Name: "b", Width: Uint64Size},
		Field{Name: "c", Width: BoolSize},
		Field{Name: "d", Width: 200},
	)

	assert.Equal(t, 241, l.Span())
	assert.Equal(t, 0, l.Offset("a"))
	assert.Equal(t, 32, l.Offset("b"))
	assert.Equal(t, 40, l.Offset("c"))
	assert.Equal(t, 41, l.Offset("d"))
	assert.Equal(t, 200, l.Width("d"))
	assert.Len(t, l.Fields(), 4)

	assert.Panics(t, func() { l.Offset("missing") })
	assert.Panics(t, func() { NewLayout(Field{Name: "a", Width: 1}, Field{Name: "a", Width: 1}) })
	assert.Panics(t, func() { NewLayout(Field{Name: "a", Width: 0}) })
}

func TestIntegers(t *testing.T) {
	b := make([]byte, 16)

	require.NoError(t, PutUint8(b, 0, 0xab))
	v8, err := GetUint8(b, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0xab, v8)

	require.NoError(t, PutUint16(b, 1, 0x0102))
	assert.Equal(t, []byte{0x02, 0x01}, b[1:3])
	v16, err := GetUint16(b, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 0x0102, v16)

	require.NoError(t, PutUint32(b, 4, math.MaxUint32-1))
	v32, err := GetUint32(b, 4)
	require.NoError(t, err)
	assert.EqualValues(t, math.MaxUint32-1, v32)

	require.NoError(t, PutUint64(b, 8, 41))
	assert.Equal(t, []byte{41, 0, 0, 0, 0, 0, 0, 0}, b[8:16])
	v64, err := GetUint64(b, 8)
	require.NoError(t, err)
	assert.EqualValues(t, 41, v64)

	u := Uint128{Lo: 1, Hi: math.MaxUint64}
	require.NoError(t, PutUint128(b, 0, u))
	assert.Equal(t, byte(1), b[0])
	assert.Equal(t, byte(0xff), b[15])
	actual, err := GetUint128(b, 0)
	require.NoError(t, err)
	assert.Equal(t, u, actual)
}

func TestOverflowUnderflow(t *testing.T) {
	b := make([]byte, 7)
	original := bytes.Repeat([]byte{0xee}, 7)
	copy(b, original)

	assert.True(t, errors.Is(PutUint64(b, 0, 1), ErrLayoutOverflow))
	assert.True(t, errors.Is(PutUint32(b, 4, 1), ErrLayoutOverflow))
	assert.True(t, errors.Is(PutUint8(b, 7, 1), ErrLayoutOverflow))
	assert.True(t, errors.Is(PutUint8(b, -1, 1), ErrLayoutOverflow))
	assert.True(t, errors.Is(PutKey(b, 0, make([]byte, KeySize)), ErrLayoutOverflow))
	assert.True(t, errors.Is(PutFixedString(b, 0, 8, "a"), ErrLayoutOverflow))
	assert.Equal(t, original, b)

	_, err := GetUint64(b, 0)
	assert.True(t, errors.Is(err, ErrLayoutUnderflow))
	_, err = GetUint16(b, 6)
	assert.True(t, errors.Is(err, ErrLayoutUnderflow))
	_, err = GetUint128(b, 0)
	assert.True(t, errors.Is(err, ErrLayoutUnderflow))
	_, err = GetKey(b, 0)
	assert.True(t, errors.Is(err, ErrLayoutUnderflow))
	_, err = GetFixedString(b, 0, 8)
	assert.True(t, errors.Is(err, ErrLayoutUnderflow))
	_, err = GetOptionalKey(b, 0)
	assert.True(t, errors.Is(err, ErrLayoutUnderflow))
}

func TestOverflowUnderflow_ExtremeBounds(t *testing.T) {
	b := make([]byte, 8)

	for _, offset := range []int{math.MaxInt, math.MaxInt - 3, math.MaxInt - 7} {
		assert.True(t, errors.Is(PutUint64(b, offset, 1), ErrLayoutOverflow), offset)
		assert.True(t, errors.Is(PutBytes(b, offset, 4, nil), ErrLayoutOverflow), offset)

		_, err := GetUint64(b, offset)
		assert.True(t, errors.Is(err, ErrLayoutUnderflow), offset)
		_, err = GetTerminatedString(b, offset, 4)
		assert.True(t, errors.Is(err, ErrLayoutUnderflow), offset)
	}

	// Negative widths never reach a slice expression.
	_, err := GetFixedString(b, 0, -1)
	assert.True(t, errors.Is(err, ErrLayoutUnderflow))
	_, err = GetBytes(b, 4, -8)
	assert.True(t, errors.Is(err, ErrLayoutUnderflow))
	_, err = GetPackedStrings(b, 0, -1, 3)
	assert.True(t, errors.Is(err, ErrLayoutUnderflow))
	assert.True(t, errors.Is(PutBytes(b, 0, -1, nil), ErrLayoutOverflow))

	assert.Equal(t, make([]byte, 8), b)
}

func TestFixedString(t *testing.T) {
	b := bytes.Repeat([]byte{0xff}, 8)

	require.NoError(t, PutFixedString(b, 0, 8, "BTC"))
	assert.Equal(t, []byte{'B', 'T', 'C', 0, 0, 0, 0, 0}, b)

	s, err := GetFixedString(b, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, "BTC", s)

	// Exactly slot width: no terminator, still round trips.
	require.NoError(t, PutFixedString(b, 0, 8, "ABCDEFGH"))
	assert.Equal(t, []byte("ABCDEFGH"), b)
	s, err = GetFixedString(b, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGH", s)

	require.NoError(t, PutFixedString(b, 0, 8, ""))
	s, err = GetFixedString(b, 0, 8)
	require.NoError(t, err)
	assert.Empty(t, s)

	// Multi-byte UTF-8 is measured in bytes.
	require.NoError(t, PutFixedString(b, 0, 8, "☉☉"))
	s, err = GetFixedString(b, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, "☉☉", s)
	assert.True(t, errors.Is(PutFixedString(b, 0, 8, "☉☉☉"), ErrStringTooLong))
}

func TestFixedString_TooLongLeavesBufferUntouched(t *testing.T) {
	b := make([]byte, 16)
	copy(b, "existing")
	before := append([]byte(nil), b...)

	err := PutFixedString(b, 4, 8, strings.Repeat("x", 40))
	assert.True(t, errors.Is(err, ErrStringTooLong))
	assert.Equal(t, before, b)
}

func TestTerminatedString(t *testing.T) {
	b := make([]byte, 128)

	require.NoError(t, PutTerminatedString(b, 0, 128, "Bitcoin"))
	assert.Equal(t, []byte("Bitcoin\n"), b[:8])
	assert.Equal(t, make([]byte, 120), b[8:])

	s, err := GetTerminatedString(b, 0, 128)
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin", s)

	full := strings.Repeat("z", 128)
	require.NoError(t, PutTerminatedString(b, 0, 128, full))
	s, err = GetTerminatedString(b, 0, 128)
	require.NoError(t, err)
	assert.Equal(t, full, s)

	assert.True(t, errors.Is(PutTerminatedString(b, 0, 128, full+"z"), ErrStringTooLong))
	assert.True(t, errors.Is(PutTerminatedString(b, 0, 128, "a\nb"), ErrInvalidString))
}

func TestPackedStrings(t *testing.T) {
	b := make([]byte, 168)

	require.NoError(t, PutPackedStrings(b, 0, 168, "BTC", "BTCoin", "https://example/1.png"))
	assert.Equal(t, []byte("BTC\nBTCoin\nhttps://example/1.png\n"), b[:33])

	values, err := GetPackedStrings(b, 0, 168, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC", "BTCoin", "https://example/1.png"}, values)

	require.NoError(t, PutPackedStrings(b, 0, 168, "", "", ""))
	values, err = GetPackedStrings(b, 0, 168, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", ""}, values)

	// Joined length including separators must fit.
	long := strings.Repeat("i", 166)
	assert.True(t, errors.Is(PutPackedStrings(b, 0, 168, "", "", long), ErrStringTooLong))
	require.NoError(t, PutPackedStrings(b, 0, 168, "", "", long[:165]))

	assert.True(t, errors.Is(PutPackedStrings(b, 0, 168, "a\n", "b", "c"), ErrInvalidString))
}

func TestPackedStrings_ZeroByteRejected(t *testing.T) {
	b := make([]byte, 168)
	require.NoError(t, PutPackedStrings(b, 0, 168, "BTC", "BTCoin", "icon"))
	original := append([]byte(nil), b...)

	for _, values := range [][]string{
		{"B\x00TC", "BTCoin", "icon"},
		{"BTC", "BTCoin", "icon\x00"},
	} {
		assert.True(t, errors.Is(PutPackedStrings(b, 0, 168, values...), ErrInvalidString), values)
	}
	assert.Equal(t, original, b)

	values, err := GetPackedStrings(b, 0, 168, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC", "BTCoin", "icon"}, values)
}

func TestPackedStrings_Malformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"BTC\n",
		"BTC\nBTCoin\n",
		"BTC\nBTCoin",
	} {
		b := make([]byte, 168)
		copy(b, raw)

		_, err := GetPackedStrings(b, 0, 168, 3)
		assert.True(t, errors.Is(err, ErrMalformedMeta), raw)
	}

	// A final segment without a trailing newline still counts.
	b := make([]byte, 168)
	copy(b, "a\nb\nc")
	values, err := GetPackedStrings(b, 0, 168, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, values)
}

func TestOptionalKey(t *testing.T) {
	key := make(ed25519.PublicKey, KeySize)
	for i := range key {
		key[i] = byte(i + 1)
	}

	b := make([]byte, OptionalKeySize)
	require.NoError(t, PutOptionalKey(b, 0, key))
	assert.Equal(t, byte(1), b[0])

	actual, err := GetOptionalKey(b, 0)
	require.NoError(t, err)
	assert.Equal(t, key, actual)

	// Absent tag gates the slot even with garbage present.
	b[0] = 0
	actual, err = GetOptionalKey(b, 0)
	require.NoError(t, err)
	assert.Nil(t, actual)

	require.NoError(t, PutOptionalKey(b, 0, nil))
	assert.Equal(t, make([]byte, OptionalKeySize), b)

	assert.True(t, errors.Is(PutOptionalKey(b, 0, key[:31]), ErrLayoutOverflow))
}

func TestCOptionKey(t *testing.T) {
	key := make(ed25519.PublicKey, KeySize)
	for i := range key {
		key[i] = 7
	}

	b := make([]byte, COptionKeySize)
	require.NoError(t, PutCOptionKey(b, 0, key))
	assert.Equal(t, []byte{1, 0, 0, 0}, b[:4])

	actual, err := GetCOptionKey(b, 0)
	require.NoError(t, err)
	assert.Equal(t, key, actual)

	// Any non-zero integer marks presence.
	b[0], b[3] = 0, 9
	actual, err = GetCOptionKey(b, 0)
	require.NoError(t, err)
	assert.Equal(t, key, actual)

	b[3] = 0
	actual, err = GetCOptionKey(b, 0)
	require.NoError(t, err)
	assert.Nil(t, actual)
}

func TestCheckAccountSize(t *testing.T) {
	assert.NoError(t, CheckAccountSize(make([]byte, 10), 10))
	assert.NoError(t, CheckAccountSize(make([]byte, 11), 10))
	assert.True(t, errors.Is(CheckAccountSize(make([]byte, 9), 10), ErrAccountTooShort))
}
