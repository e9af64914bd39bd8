package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldIntegerEncodings(t *testing.T) {
	f := FieldUint32(0x01020304)
	require.Len(t, f, 4)
	assert.Equal(t, Field{0x04, 0x03, 0x02, 0x01}, f) // little endian

	v, ok := f.Uint32()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x01020304), v)

	f8 := FieldUint64(1 << 40)
	require.Len(t, f8, 8)
	v8, ok := f8.Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(1<<40), v8)

	// Wrong width never parses.
	_, ok = f.Uint64()
	assert.False(t, ok)
	_, ok = f8.Uint32()
	assert.False(t, ok)
}

func TestNewTuple(t *testing.T) {
	tuple, err := NewTuple(uint32(1), 2, "text", []byte{0xff})
	require.NoError(t, err)
	require.Len(t, tuple, 4)

	n, ok := tuple[0].Uint32()
	assert.True(t, ok)
	assert.Equal(t, uint32(1), n)

	n, ok = tuple[1].Uint32()
	assert.True(t, ok)
	assert.Equal(t, uint32(2), n)

	assert.Equal(t, "text", tuple[2].String())
	assert.Equal(t, Field{0xff}, tuple[3])
}

func TestNewTupleRejectsUnsupported(t *testing.T) {
	_, err := NewTuple(3.14)
	assert.Error(t, err)

	_, err = NewTuple(-1)
	assert.Error(t, err)
}

func TestNewTupleWideInt(t *testing.T) {
	tuple, err := NewTuple(int(1) << 40)
	require.NoError(t, err)
	require.Len(t, tuple, 1)
	assert.Len(t, tuple[0], 8)
}

func TestTupleString(t *testing.T) {
	// "name" is 4 bytes wide; printable text must win over the integer
	// reading of integer-width fields.
	tuple := MustTuple(uint32(1), "name")
	assert.Equal(t, `(1, "name")`, tuple.String())

	tuple = MustTuple(uint64(1<<40), "long text", []byte{0x01, 0xff})
	assert.Equal(t, `(1099511627776, "long text", "\x01\xff")`, tuple.String())
}
