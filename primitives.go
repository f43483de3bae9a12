package codec

import "golang.org/x/exp/constraints"

// Big-endian fixed-width integers. Each decodes from exactly its own width
// and reports InsufficientBytes when the buffer is shorter.
type (
	Uint8  uint8
	Uint16 uint16
	Uint32 uint32
	Uint64 uint64
	Int8   int8
	Int16  int16
	Int32  int32
	Int64  int64
)

// decodeInt decodes a size-byte big-endian integer into dst.
func decodeInt[T constraints.Integer](buf []byte, size int, dst *T) ([]byte, error) {
	if len(buf) < size {
		return buf, InsufficientBytes
	}
	*dst = readUint[T](buf, size)
	return buf[size:], nil
}

func (v *Uint8) Decode(buf []byte) ([]byte, error)  { return decodeInt(buf, 1, v) }
func (v *Uint16) Decode(buf []byte) ([]byte, error) { return decodeInt(buf, 2, v) }
func (v *Uint32) Decode(buf []byte) ([]byte, error) { return decodeInt(buf, 4, v) }
func (v *Uint64) Decode(buf []byte) ([]byte, error) { return decodeInt(buf, 8, v) }
func (v *Int8) Decode(buf []byte) ([]byte, error)   { return decodeInt(buf, 1, v) }
func (v *Int16) Decode(buf []byte) ([]byte, error)  { return decodeInt(buf, 2, v) }
func (v *Int32) Decode(buf []byte) ([]byte, error)  { return decodeInt(buf, 4, v) }
func (v *Int64) Decode(buf []byte) ([]byte, error)  { return decodeInt(buf, 8, v) }

func (Uint8) StaticSize() int  { return 1 }
func (Uint16) StaticSize() int { return 2 }
func (Uint32) StaticSize() int { return 4 }
func (Uint64) StaticSize() int { return 8 }
func (Int8) StaticSize() int   { return 1 }
func (Int16) StaticSize() int  { return 2 }
func (Int32) StaticSize() int  { return 4 }
func (Int64) StaticSize() int  { return 8 }

// Bytes is a borrowed view of n bytes, where n is the decode argument. It
// aliases the decoded buffer and shares its lifetime.
type Bytes []byte

func (b *Bytes) DecodeWith(buf []byte, n int) ([]byte, error) {
	if n < 0 {
		return buf, InvalidEncoding
	}
	if len(buf) < n {
		return buf, InsufficientBytes
	}
	*b = Bytes(buf[:n:n])
	return buf[n:], nil
}

func (b Bytes) Size() int { return len(b) }

// Skip consumes n reserved or ignored bytes without looking at them.
type Skip struct{}

func (Skip) DecodeWith(buf []byte, n int) ([]byte, error) {
	if n < 0 {
		return buf, InvalidEncoding
	}
	if len(buf) < n {
		return buf, InsufficientBytes
	}
	return buf[n:], nil
}
