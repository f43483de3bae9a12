// Package sfnt decodes the table directory of TrueType and OpenType font
// files with the declcodec primitives. It is a consumer of the decoding
// core: every record here is built from codec.Decode calls on a cursor.
package sfnt

import (
	"fmt"
	"math"
	"time"

	codec "github.com/oy3o/declcodec"
)

// Fixed-width wrapper types from the OpenType data type table. Each decodes
// like the codec integer of the same width.
type (
	Fixed        int32  // 16.16 signed fixed-point
	FWord        int16  // font design units
	UFWord       uint16 // unsigned font design units
	F2Dot14      int16  // 2.14 signed fixed-point
	LongDateTime int64  // seconds since 1904-01-01 00:00 UTC
	Offset16     uint16
	Offset32     uint32
)

func (v *Fixed) Decode(buf []byte) ([]byte, error)        { return (*codec.Int32)(v).Decode(buf) }
func (v *FWord) Decode(buf []byte) ([]byte, error)        { return (*codec.Int16)(v).Decode(buf) }
func (v *UFWord) Decode(buf []byte) ([]byte, error)       { return (*codec.Uint16)(v).Decode(buf) }
func (v *F2Dot14) Decode(buf []byte) ([]byte, error)      { return (*codec.Int16)(v).Decode(buf) }
func (v *LongDateTime) Decode(buf []byte) ([]byte, error) { return (*codec.Int64)(v).Decode(buf) }
func (v *Offset16) Decode(buf []byte) ([]byte, error)     { return (*codec.Uint16)(v).Decode(buf) }
func (v *Offset32) Decode(buf []byte) ([]byte, error)     { return (*codec.Uint32)(v).Decode(buf) }

func (Fixed) StaticSize() int        { return 4 }
func (FWord) StaticSize() int        { return 2 }
func (UFWord) StaticSize() int       { return 2 }
func (F2Dot14) StaticSize() int      { return 2 }
func (LongDateTime) StaticSize() int { return 8 }
func (Offset16) StaticSize() int     { return 2 }
func (Offset32) StaticSize() int     { return 4 }

// Float64 returns the fixed-point value as a float.
func (v Fixed) Float64() float64 { return float64(v) / (1 << 16) }

// Float64 returns the fixed-point value as a float.
func (v F2Dot14) Float64() float64 { return float64(v) / (1 << 14) }

var epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// Time converts the timestamp to a time.Time in UTC. Values beyond the range
// of time.Duration are clamped.
func (v LongDateTime) Time() time.Time {
	const maxSeconds = math.MaxInt64 / int64(time.Second)
	secs := int64(v)
	switch {
	case secs > maxSeconds:
		secs = maxSeconds
	case secs < -maxSeconds:
		secs = -maxSeconds
	}
	return epoch1904.Add(time.Duration(secs) * time.Second)
}

// Uint24 is a three-byte big-endian unsigned integer.
type Uint24 uint32

func (v *Uint24) Decode(buf []byte) ([]byte, error) {
	if len(buf) < 3 {
		return buf, codec.InsufficientBytes
	}
	*v = Uint24(buf[0])<<16 | Uint24(buf[1])<<8 | Uint24(buf[2])
	return buf[3:], nil
}

func (Uint24) StaticSize() int { return 3 }

// Tag is a four-byte table or script identifier.
type Tag [4]byte

// MakeTag builds a tag from a string of up to four bytes, padding with spaces
// as the format does for short tags.
func MakeTag(s string) Tag {
	t := Tag{' ', ' ', ' ', ' '}
	copy(t[:], s)
	return t
}

func (t *Tag) Decode(buf []byte) ([]byte, error) {
	if len(buf) < 4 {
		return buf, codec.InsufficientBytes
	}
	copy(t[:], buf)
	return buf[4:], nil
}

func (Tag) StaticSize() int { return 4 }

// Uint32 returns the tag as a big-endian integer, the order tags sort in.
func (t Tag) Uint32() uint32 {
	return uint32(t[0])<<24 | uint32(t[1])<<16 | uint32(t[2])<<8 | uint32(t[3])
}

// String renders the tag as its four characters when they are all printable
// ASCII, and as 0x-prefixed uppercase hexadecimal otherwise.
func (t Tag) String() string {
	for _, c := range t {
		if c < 32 || c > 126 {
			return fmt.Sprintf("0x%08X", t.Uint32())
		}
	}
	return string(t[:])
}

// GoString implements fmt.GoStringer.
func (t Tag) GoString() string {
	s := t.String()
	if len(s) == 4 {
		return fmt.Sprintf("Tag(%q)", s)
	}
	return "Tag(" + s + ")"
}
