package codec

import (
	"fmt"
	"iter"
)

// ArrayArg is the argument an Array decodes with: how many elements it
// holds and the argument every element is decoded with.
type ArrayArg[A any] struct {
	Length int
	Item   A
}

type elemFunc[T, A any] func(buf []byte, arg A) (T, []byte, error)

// Array is a lazily decoded sequence of Length fixed-width elements of T,
// all sharing one argument. Decoding an Array only records where it starts;
// elements are decoded when iterated or indexed, every time they are.
//
// T (or *T) must implement StaticSizer, and either DecodableWith[A] or, when
// A is Unit, Decodable. DecodeArray and DecodeArrayWith check this at compile
// time; decoding an Array of any other element type panics.
type Array[T, A any] struct {
	buf    []byte // exactly Size() bytes, starting at the first element
	length int
	arg    A
	stride int
	elem   elemFunc[T, A]
}

var _ DecodableWith[ArrayArg[Unit]] = (*Array[Uint8, Unit])(nil)

// DecodeWith records the array's position, length and element argument and
// advances past its Size() bytes. No element is decoded.
func (a *Array[T, A]) DecodeWith(buf []byte, arg ArrayArg[A]) ([]byte, error) {
	if arg.Length < 0 {
		return buf, InvalidEncoding
	}
	elem, stride := elementDecoder[T, A]()
	if stride > 0 && arg.Length > len(buf)/stride {
		return buf, InsufficientBytes
	}
	size := stride * arg.Length
	*a = Array[T, A]{
		buf:    buf[:size:size],
		length: arg.Length,
		arg:    arg.Item,
		stride: stride,
		elem:   elem,
	}
	return buf[size:], nil
}

// elementDecoder resolves how to decode one T with an A, and T's stride.
func elementDecoder[T, A any]() (elemFunc[T, A], int) {
	var zero T
	stride, ok := StaticSizeOf[T]()
	if !ok {
		panic(fmt.Sprintf("codec: array element %T has no static size", zero))
	}

	switch any(&zero).(type) {
	case DecodableWith[A]:
		return func(buf []byte, arg A) (T, []byte, error) {
			var v T
			rest, err := any(&v).(DecodableWith[A]).DecodeWith(buf, arg)
			return v, rest, err
		}, stride
	case Decodable:
		var arg A
		if _, ok := any(arg).(Unit); ok {
			return func(buf []byte, _ A) (T, []byte, error) {
				var v T
				rest, err := NoArg[Decodable]{D: any(&v).(Decodable)}.DecodeWith(buf, Unit{})
				return v, rest, err
			}, stride
		}
	}
	panic(fmt.Sprintf("codec: array element %T cannot be decoded with %T", zero, *new(A)))
}

// Len returns the number of elements.
func (a Array[T, A]) Len() int { return a.length }

// Size returns the encoded size of the array: the element size times Len.
func (a Array[T, A]) Size() int { return a.stride * a.length }

// Bytes returns the array's encoded bytes. The slice aliases the decoded buffer.
func (a Array[T, A]) Bytes() []byte { return a.buf }

// Iter returns a new iterator positioned at the first element. Iterators are
// independent of each other and of the array.
func (a Array[T, A]) Iter() *ArrayIter[T, A] {
	return &ArrayIter[T, A]{
		cur:    Cursor{b: a.buf},
		arg:    a.arg,
		length: a.length,
		elem:   a.elem,
	}
}

// All returns a sequence over the elements. It yields each decoded element
// with a nil error; if an element fails to decode it yields that error once
// and stops.
func (a Array[T, A]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it := a.Iter()
		for {
			v, ok := it.Next()
			if !ok {
				if err := it.Err(); err != nil {
					var zero T
					yield(zero, err)
				}
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Collect decodes every element into a new slice.
func (a Array[T, A]) Collect() ([]T, error) {
	out := make([]T, 0, a.length)
	it := a.Iter()
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// At decodes the element at index i, addressed directly by stride. It panics
// if i is out of range.
func (a Array[T, A]) At(i int) (T, error) {
	if i < 0 || i >= a.length {
		panic(fmt.Sprintf("codec: array index %d out of range [0:%d]", i, a.length))
	}
	off := i * a.stride
	v, _, err := a.elem(a.buf[off:off+a.stride], a.arg)
	return v, err
}

// Find returns the first element for which match reports true and its index,
// or index -1 if there is none. Decoding stops at the first error.
func (a Array[T, A]) Find(match func(T) bool) (T, int, error) {
	var zero T
	it := a.Iter()
	for i := 0; ; i++ {
		v, ok := it.Next()
		if !ok {
			return zero, -1, it.Err()
		}
		if match(v) {
			return v, i, nil
		}
	}
}

// Search binary-searches an array sorted in ascending order. cmp returns a
// negative number when an element orders before the target, zero on a match
// and a positive number after it. Only O(log n) elements are decoded.
func (a Array[T, A]) Search(cmp func(T) int) (T, int, error) {
	var zero T
	lo, hi := 0, a.length
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		v, err := a.At(mid)
		if err != nil {
			return zero, -1, err
		}
		switch c := cmp(v); {
		case c < 0:
			lo = mid + 1
		case c > 0:
			hi = mid
		default:
			return v, mid, nil
		}
	}
	return zero, -1, nil
}

// ArrayIter decodes the elements of an Array one at a time through its own
// cursor. The first decode error is latched: the iterator stops for good and
// Err reports it, since element boundaries after a bad element cannot be
// trusted.
type ArrayIter[T, A any] struct {
	cur    Cursor
	arg    A
	length int
	pos    int
	err    error
	elem   elemFunc[T, A]
}

// Next decodes the next element. It returns false once every element has
// been produced or an element failed to decode; check Err to tell them apart.
func (it *ArrayIter[T, A]) Next() (T, bool) {
	var zero T
	if it.err != nil || it.pos >= it.length {
		return zero, false
	}
	it.pos++
	v, rest, err := it.elem(it.cur.Remaining(), it.arg)
	if err != nil {
		it.err = err
		return zero, false
	}
	it.cur.advance(rest)
	return v, true
}

// Err returns the error that stopped the iterator, if any.
func (it *ArrayIter[T, A]) Err() error { return it.err }

// Position returns how many elements Next has attempted.
func (it *ArrayIter[T, A]) Position() int { return it.pos }

// Done reports whether Next will produce no further elements.
func (it *ArrayIter[T, A]) Done() bool { return it.err != nil || it.pos >= it.length }
