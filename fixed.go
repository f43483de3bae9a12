package codec

import (
	"encoding/binary"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// payloadSizes maps a payload type to its encoded size, so binary.Size runs
// once per type. Arrays of Fixed ask for the size on every construction.
var payloadSizes = xsync.NewMap[reflect.Type, int]()

// Fixed decodes a plain struct of fixed-width fields in declaration order,
// big-endian, for records that need no hand-written decoder.
//
// Payload must have a fixed encoded size: no slices, maps, strings or
// pointers. StaticSize panics otherwise.
type Fixed[Payload any] struct {
	Payload Payload
}

var (
	_ Decodable   = (*Fixed[struct{}])(nil)
	_ StaticSizer = Fixed[struct{}]{}
)

// StaticSize returns the encoded size of Payload.
func (f Fixed[Payload]) StaticSize() int {
	t := reflect.TypeFor[Payload]()
	if n, ok := payloadSizes.Load(t); ok {
		return n
	}
	n := binary.Size(&f.Payload)
	if n < 0 {
		panic("codec: Fixed payload " + t.String() + " is not fixed-size")
	}
	payloadSizes.Store(t, n)
	return n
}

func (f *Fixed[Payload]) Decode(buf []byte) ([]byte, error) {
	n := f.StaticSize()
	if len(buf) < n {
		return buf, InsufficientBytes
	}
	var p Payload
	if _, err := binary.Decode(buf[:n], Order, &p); err != nil {
		return buf, InvalidEncoding
	}
	f.Payload = p
	return buf[n:], nil
}
