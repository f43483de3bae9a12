package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lawInput = []byte{0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87, 0x88, 0x89, 0x8A}

// checkSizeLaws verifies that T consumes exactly its static size from a
// long enough buffer and fails with InsufficientBytes on every shorter one.
func checkSizeLaws[T any, P interface {
	*T
	Decodable
	StaticSizer
}](t *testing.T) {
	t.Helper()
	size, ok := StaticSizeOf[T]()
	require.True(t, ok)

	c := NewCursor(lawInput)
	_, err := Decode[T, P](c)
	require.NoError(t, err)
	assert.Equal(t, size, c.Offset(), "consumed bytes")
	assert.Equal(t, lawInput[size:], c.Remaining())

	for n := 0; n < size; n++ {
		c := NewCursor(lawInput[:n])
		_, err := Decode[T, P](c)
		assert.ErrorIs(t, err, InsufficientBytes, "buffer of %d bytes", n)
		assert.Equal(t, 0, c.Offset())
	}
}

func TestPrimitiveSizeLaws(t *testing.T) {
	t.Run("Uint8", checkSizeLaws[Uint8])
	t.Run("Uint16", checkSizeLaws[Uint16])
	t.Run("Uint32", checkSizeLaws[Uint32])
	t.Run("Uint64", checkSizeLaws[Uint64])
	t.Run("Int8", checkSizeLaws[Int8])
	t.Run("Int16", checkSizeLaws[Int16])
	t.Run("Int32", checkSizeLaws[Int32])
	t.Run("Int64", checkSizeLaws[Int64])
	t.Run("Pair", checkSizeLaws[pair])
}

func TestPrimitiveValues(t *testing.T) {
	c := NewCursor([]byte{
		0xFF,
		0xFF, 0xFE,
		0x00, 0x01, 0x00, 0x00,
		0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		0x7F,
	})

	i8, err := Decode[Int8](c)
	require.NoError(t, err)
	assert.Equal(t, Int8(-1), i8)

	i16, err := Decode[Int16](c)
	require.NoError(t, err)
	assert.Equal(t, Int16(-2), i16)

	u32, err := Decode[Uint32](c)
	require.NoError(t, err)
	assert.Equal(t, Uint32(0x00010000), u32)

	i64, err := Decode[Int64](c)
	require.NoError(t, err)
	assert.Equal(t, Int64(-0x7FFFFFFFFFFFFFFF), i64)

	u8, err := Decode[Uint8](c)
	require.NoError(t, err)
	assert.Equal(t, Uint8(0x7F), u8)

	assert.Zero(t, c.Available())
}

func TestBytes(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	c := NewCursor(buf)

	b, err := DecodeWith[Bytes](c, 3)
	require.NoError(t, err)
	assert.Equal(t, Bytes{1, 2, 3}, b)
	assert.Same(t, &buf[0], &b[0], "Bytes borrows instead of copying")
	assert.Equal(t, 3, cap(b), "the view cannot be appended into the rest of the buffer")

	_, err = DecodeWith[Bytes](c, 3)
	assert.ErrorIs(t, err, InsufficientBytes)

	_, err = DecodeWith[Bytes](c, -1)
	assert.ErrorIs(t, err, InvalidEncoding)

	b, err = DecodeWith[Bytes](c, 0)
	require.NoError(t, err)
	assert.Empty(t, b)
	assert.Equal(t, 3, c.Offset())
}

func TestSkip(t *testing.T) {
	c := NewCursor([]byte{0, 0, 0, 9})
	_, err := DecodeWith[Skip](c, 3)
	require.NoError(t, err)

	v, err := Decode[Uint8](c)
	require.NoError(t, err)
	assert.Equal(t, Uint8(9), v)

	_, err = DecodeWith[Skip](c, 1)
	assert.ErrorIs(t, err, InsufficientBytes)
}
