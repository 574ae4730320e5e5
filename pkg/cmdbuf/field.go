// Package cmdbuf holds the in-memory command buffer: every RF command of a
// setting, each as an ordered list of fields with their defaults and the
// values written by the parameter encoders.
//
// Field state is only changed through the Buffer mutators, which keep the
// invariant that a field carries a value only when it differs from its
// default.
package cmdbuf

import "github.com/herlein/radiocfg/pkg/descriptor"

// Kind tells how a buffer field maps onto the command layout
type Kind int

const (
	// KindWord is a whole field at a byte offset
	KindWord Kind = iota
	// KindBitSubfield is one subfield of a bit-decomposed word
	KindBitSubfield
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindBitSubfield:
		return "bit-subfield"
	}
	return "unknown"
}

// Field is one addressable field of a command in the buffer
type Field struct {
	name       string
	kind       Kind
	pointer    bool
	byteOffset int
	width      int // nibbles; 0 for bit subfields
	def        uint64
	symbol     string // pointer symbol, replaces the numeric default
	ptrOffset  int    // sub-struct offset, -1 when none

	value      uint64
	overridden bool
}

// Name returns the field name; bit subfields are named "word.subfield"
func (f *Field) Name() string { return f.name }

// Kind returns the field kind
func (f *Field) Kind() Kind { return f.kind }

// IsPointer reports whether the field is a pointer
func (f *Field) IsPointer() bool { return f.pointer }

// ByteOffset returns the byte offset of a word field. The second result is
// false for bit subfields.
func (f *Field) ByteOffset() (int, bool) {
	return f.byteOffset, f.kind == KindWord
}

// Width returns the rendering width in hex digits
func (f *Field) Width() int { return f.width }

// Default returns the default taken from the setting when the buffer was
// built
func (f *Field) Default() uint64 { return f.def }

// Symbol returns the pointer symbol that stands in for the default, if any
func (f *Field) Symbol() string { return f.symbol }

// PtrOffset returns the byte offset where the pointed-to parameter struct
// starts. The second result is false when the field has none.
func (f *Field) PtrOffset() (int, bool) {
	return f.ptrOffset, f.ptrOffset >= 0
}

// Value returns the written value, or the default when none is set
func (f *Field) Value() uint64 {
	if f.overridden {
		return f.value
	}
	return f.def
}

// Overridden reports whether the field carries a value other than its
// default
func (f *Field) Overridden() bool { return f.overridden }

func (f *Field) set(v uint64) {
	if v == f.def {
		f.value, f.overridden = 0, false
		return
	}
	f.value, f.overridden = v, true
}

// Command is one RF command in the buffer
type Command struct {
	Name   string
	Fields []*Field
}

// Field returns the field with the given name
func (c *Command) Field(name string) (*Field, bool) {
	for _, f := range c.Fields {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

// OptionSource provides the option list of a configurable
type OptionSource interface {
	Options(name string) []descriptor.Option
}
