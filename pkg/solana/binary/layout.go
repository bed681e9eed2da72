// Package binary provides the fixed-width field codecs and declarative record
// layouts used to encode program accounts and instruction payloads.
//
// All multi-byte integers are little-endian. Every Put* function fails with
// ErrLayoutOverflow and every Get* function with ErrLayoutUnderflow when the
// buffer is too small, and neither touches the buffer on failure.
package binary

import (
	"fmt"
)

// Common field widths.
const (
	BoolSize    = 1
	Uint8Size   = 1
	Uint16Size  = 2
	Uint32Size  = 4
	Uint64Size  = 8
	Uint128Size = 16
	KeySize     = 32

	// OptionalKeySize is a 1-byte boolean tag followed by a key.
	OptionalKeySize = BoolSize + KeySize

	// COptionKeySize is a 4-byte integer tag followed by a key.
	COptionKeySize = Uint32Size + KeySize
)

// Field is a named, fixed-width slot in a Layout.
type Field struct {
	Name  string
	Width int
}

// Layout is an ordered list of fields whose offsets are the cumulative widths
// of the fields before them.
type Layout struct {
	fields  []Field
	offsets map[string]int
	span    int
}

// NewLayout builds a layout from the provided fields. It panics on duplicate
// names or non-positive widths, since layouts are declared once at init time.
func NewLayout(fields ...Field) *Layout {
	l := &Layout{
		fields:  make([]Field, len(fields)),
		offsets: make(map[string]int, len(fields)),
	}
	copy(l.fields, fields)

	for _, f := range fields {
		if f.Width <= 0 {
			panic(fmt.Sprintf("binary: field %q has invalid width %d", f.Name, f.Width))
		}
		if _, ok := l.offsets[f.Name]; ok {
			panic(fmt.Sprintf("binary: duplicate field %q", f.Name))
		}

		l.offsets[f.Name] = l.span
		l.span += f.Width
	}

	return l
}

// Span is the total byte length of the layout.
func (l *Layout) Span() int {
	return l.span
}

// Offset returns the byte offset of the named field. Unknown names panic.
func (l *Layout) Offset(name string) int {
	offset, ok := l.offsets[name]
	if !ok {
		panic(fmt.Sprintf("binary: unknown field %q", name))
	}
	return offset
}

// Width returns the width of the named field. Unknown names panic.
func (l *Layout) Width(name string) int {
	for _, f := range l.fields {
		if f.Name == name {
			return f.Width
		}
	}
	panic(fmt.Sprintf("binary: unknown field %q", name))
}

// Fields returns a copy of the layout's fields in order.
func (l *Layout) Fields() []Field {
	fields := make([]Field, len(l.fields))
	copy(fields, l.fields)
	return fields
}
