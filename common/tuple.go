package common

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Field
// --------------------------------------------------------------------------

// Field is one field of a tuple: an opaque byte string on the wire.
// Integer fields are encoded as fixed-width little-endian values, which
// is what the server's numeric indexes expect.
type Field []byte

// NewField converts a Go value into a wire field.
// Supported types: string, []byte, uint32, uint64, int (encoded as uint32
// when it fits, uint64 otherwise).
func NewField(v any) (Field, error) {
	switch x := v.(type) {
	case Field:
		return x, nil
	case []byte:
		return Field(x), nil
	case string:
		return Field(x), nil
	case uint32:
		return FieldUint32(x), nil
	case uint64:
		return FieldUint64(x), nil
	case int:
		if x < 0 {
			return nil, fmt.Errorf("negative field value %d not representable", x)
		}
		if uint64(x) <= 0xFFFFFFFF {
			return FieldUint32(uint32(x)), nil
		}
		return FieldUint64(uint64(x)), nil
	default:
		return nil, fmt.Errorf("unsupported field type %T", v)
	}
}

// FieldUint32 encodes v as a 4-byte little-endian field.
func FieldUint32(v uint32) Field {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

// FieldUint64 encodes v as an 8-byte little-endian field.
func FieldUint64(v uint64) Field {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

// Uint32 interprets the field as a 4-byte little-endian integer.
func (f Field) Uint32() (uint32, bool) {
	if len(f) != 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(f), true
}

// Uint64 interprets the field as an 8-byte little-endian integer.
func (f Field) Uint64() (uint64, bool) {
	if len(f) != 8 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(f), true
}

// String returns the field bytes as a string.
func (f Field) String() string {
	return string(f)
}

// --------------------------------------------------------------------------
// Tuple
// --------------------------------------------------------------------------

// Tuple is an ordered sequence of fields representing one record.
type Tuple []Field

// NewTuple builds a tuple from Go values via NewField.
func NewTuple(values ...any) (Tuple, error) {
	t := make(Tuple, 0, len(values))
	for i, v := range values {
		f, err := NewField(v)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		t = append(t, f)
	}
	return t, nil
}

// MustTuple is NewTuple that panics on unsupported values.
// Intended for tests and constant tuples.
func MustTuple(values ...any) Tuple {
	t, err := NewTuple(values...)
	if err != nil {
		panic(err)
	}
	return t
}

// String formats the tuple for logs. The wire carries no type
// information, so the rendering guesses: printable fields are shown as
// quoted text, and only non-printable integer-width fields are shown as
// numbers.
func (t Tuple) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, f := range t {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.format())
	}
	sb.WriteString(")")
	return sb.String()
}

func (f Field) format() string {
	if f.printable() {
		return fmt.Sprintf("%q", string(f))
	}
	if n, ok := f.Uint32(); ok {
		return fmt.Sprintf("%d", n)
	}
	if n, ok := f.Uint64(); ok {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%q", string(f))
}

func (f Field) printable() bool {
	for _, b := range f {
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return len(f) > 0
}
