package schema

import (
	"fmt"
	"reflect"

	codec "github.com/oy3o/declcodec"
)

// Kind identifies which cursor operation a field is decoded with.
type Kind uint8

const (
	KindValue     Kind = iota // codec.Decode
	KindValueWith             // codec.DecodeWith
	KindArray                 // codec.DecodeArray
	KindArrayWith             // codec.DecodeArrayWith
	KindRest                  // the cursor's remaining bytes, not decoded
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindValueWith:
		return "value-with"
	case KindArray:
		return "array"
	case KindArrayWith:
		return "array-with"
	case KindRest:
		return "rest"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

type decodeFunc func(c *codec.Cursor, length int, arg any) (any, error)

// Strategy describes how one field is decoded: the operation, the Go type it
// produces and where its length and argument come from.
type Strategy struct {
	kind     Kind
	typeName string
	zero     any
	length   *Source
	arg      *Source
	argType  reflect.Type
	decode   decodeFunc
}

// Value decodes a T with codec.Decode.
func Value[T any, P codec.Decoder[T]]() Strategy {
	var zero T
	return Strategy{
		kind:     KindValue,
		typeName: fmt.Sprintf("%T", zero),
		zero:     zero,
		decode: func(c *codec.Cursor, _ int, _ any) (any, error) {
			v, err := codec.Decode[T, P](c)
			return v, err
		},
	}
}

// ValueWith decodes a T with codec.DecodeWith, passing the value of arg.
func ValueWith[T, A any, P codec.DecoderWith[T, A]](arg Source) Strategy {
	var zero T
	return Strategy{
		kind:     KindValueWith,
		typeName: fmt.Sprintf("%T", zero),
		zero:     zero,
		arg:      &arg,
		argType:  reflect.TypeFor[A](),
		decode: func(c *codec.Cursor, _ int, arg any) (any, error) {
			a, _ := arg.(A)
			v, err := codec.DecodeWith[T, A, P](c, a)
			return v, err
		},
	}
}

// ArrayOf decodes a lazy codec.Array of T with codec.DecodeArray, its length
// taken from length.
func ArrayOf[T any, P interface {
	*T
	codec.Decodable
	codec.StaticSizer
}](length Source) Strategy {
	var zero codec.Array[T, codec.Unit]
	return Strategy{
		kind:     KindArray,
		typeName: fmt.Sprintf("Array[%T]", *new(T)),
		zero:     zero,
		length:   &length,
		decode: func(c *codec.Cursor, n int, _ any) (any, error) {
			v, err := codec.DecodeArray[T, P](c, n)
			return v, err
		},
	}
}

// ArrayOfWith decodes a lazy codec.Array of T with codec.DecodeArrayWith,
// every element sharing the value of arg.
func ArrayOfWith[T, A any, P interface {
	*T
	codec.DecodableWith[A]
	codec.StaticSizer
}](length, arg Source) Strategy {
	var zero codec.Array[T, A]
	return Strategy{
		kind:     KindArrayWith,
		typeName: fmt.Sprintf("Array[%T]", *new(T)),
		zero:     zero,
		length:   &length,
		arg:      &arg,
		argType:  reflect.TypeFor[A](),
		decode: func(c *codec.Cursor, n int, arg any) (any, error) {
			a, _ := arg.(A)
			v, err := codec.DecodeArrayWith[T, A, P](c, n, a)
			return v, err
		},
	}
}

// Rest assigns the bytes left after every other field has been decoded. The
// value is a codec.Bytes that aliases the decoded buffer.
func Rest() Strategy {
	return Strategy{
		kind:     KindRest,
		typeName: "codec.Bytes",
		zero:     codec.Bytes(nil),
	}
}

// Source is where a length or an argument comes from: a literal, or the
// decoded value of an earlier field.
type Source struct {
	lit any
	ref string
}

// Lit is a literal source.
func Lit(v any) Source { return Source{lit: v} }

// Ref names an earlier field whose decoded value is the source.
func Ref(field string) Source { return Source{ref: field} }

// IsRef reports whether s refers to a field.
func (s Source) IsRef() bool { return s.ref != "" }

func (s Source) String() string {
	if s.IsRef() {
		return "$" + s.ref
	}
	return fmt.Sprint(s.lit)
}

// resolve returns the source's value given the fields decoded so far.
func (s Source) resolve(values map[string]any) any {
	if s.IsRef() {
		return values[s.ref]
	}
	return s.lit
}

// toInt converts any Go integer, including named types such as codec.Uint16,
// to an int.
func toInt(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if int64(int(n)) != n {
			return 0, false
		}
		return int(n), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > uint64(^uint(0)>>1) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
