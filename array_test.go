package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Array Test Suite ---

type ArrayTestSuite struct {
	suite.Suite
	buf []byte
}

// SetupTest runs before each test in the suite, ensuring a clean state.
func (s *ArrayTestSuite) SetupTest() {
	// Five pairs followed by a trailer byte.
	s.buf = []byte{
		0x00, 0x01, 0x00, 0x02,
		0x00, 0x03, 0x00, 0x04,
		0x00, 0x05, 0x00, 0x06,
		0x00, 0x07, 0x00, 0x08,
		0x00, 0x09, 0x00, 0x0A,
		0xEE,
	}
}

func (s *ArrayTestSuite) TestConstructionDecodesNothing() {
	// Every element byte is an invalid flag, yet construction succeeds.
	c := NewCursor([]byte{7, 7, 7})
	arr, err := DecodeArray[flag](c, 3)
	s.Require().NoError(err)
	s.Assert().Equal(3, arr.Len())
	s.Assert().Equal(3, c.Offset(), "the cursor moves past the array")

	_, err = arr.At(0)
	s.Assert().ErrorIs(err, InvalidEncoding)
}

func (s *ArrayTestSuite) TestDeterminism() {
	c := NewCursor(s.buf)
	arr, err := DecodeArray[pair](c, 5)
	s.Require().NoError(err)

	got, err := arr.Collect()
	s.Require().NoError(err)
	s.Require().Len(got, 5)

	for k, v := range got {
		want, err := Decode[pair](NewCursor(s.buf[k*4:]))
		s.Require().NoError(err)
		s.Assert().Equal(want, v, "element %d", k)
	}

	trailer, err := Decode[Uint8](c)
	s.Require().NoError(err)
	s.Assert().Equal(Uint8(0xEE), trailer)
}

func (s *ArrayTestSuite) TestSizeAgreement() {
	for n := 0; n <= 5; n++ {
		arr, err := DecodeArray[pair](NewCursor(s.buf), n)
		s.Require().NoError(err)
		s.Assert().Equal(4*n, arr.Size())
		s.Assert().Equal(4*n, len(arr.Bytes()))

		size, ok := SizeOf(arr)
		s.Require().True(ok)
		s.Assert().Equal(4*n, size)
	}
}

func (s *ArrayTestSuite) TestEmpty() {
	// A zero-length array of an always-failing element never attempts a decode.
	arr, err := DecodeArray[flag](NewCursor(nil), 0)
	s.Require().NoError(err)

	it := arr.Iter()
	s.Assert().True(it.Done())
	_, ok := it.Next()
	s.Assert().False(ok)
	s.Assert().NoError(it.Err())
	s.Assert().Equal(0, it.Position())

	for range arr.All() {
		s.Fail("empty array yielded an element")
	}
}

func (s *ArrayTestSuite) TestExhaustion() {
	arr, err := DecodeArray[pair](NewCursor(s.buf), 2)
	s.Require().NoError(err)

	it := arr.Iter()
	for i := 0; i < 2; i++ {
		_, ok := it.Next()
		s.Require().True(ok)
	}
	for i := 0; i < 3; i++ {
		_, ok := it.Next()
		s.Assert().False(ok, "exhausted iterators stay exhausted")
	}
	s.Assert().NoError(it.Err())
	s.Assert().Equal(2, it.Position())
}

func (s *ArrayTestSuite) TestReiteration() {
	arr, err := DecodeArray[pair](NewCursor(s.buf), 5)
	s.Require().NoError(err)

	first, err := arr.Collect()
	s.Require().NoError(err)
	second, err := arr.Collect()
	s.Require().NoError(err)
	s.Assert().Equal(first, second)

	// Interleaved iterators do not disturb each other.
	a, b := arr.Iter(), arr.Iter()
	_, _ = a.Next()
	va, _ := a.Next()
	vb, _ := b.Next()
	s.Assert().Equal(pair{A: 3, B: 4}, va)
	s.Assert().Equal(pair{A: 1, B: 2}, vb)
}

func (s *ArrayTestSuite) TestHaltsOnFirstError() {
	c := NewCursor([]byte{1, 0, 9, 1, 1})
	arr, err := DecodeArray[flag](c, 5)
	s.Require().NoError(err)

	it := arr.Iter()
	v, ok := it.Next()
	s.Require().True(ok)
	s.Assert().True(bool(v))
	_, ok = it.Next()
	s.Require().True(ok)

	_, ok = it.Next()
	s.Assert().False(ok)
	s.Assert().ErrorIs(it.Err(), InvalidEncoding)
	s.Assert().Equal(3, it.Position())

	// Later elements decode fine on their own, but the iterator never reaches them.
	_, ok = it.Next()
	s.Assert().False(ok)
	s.Assert().Equal(3, it.Position())
	s.Assert().True(it.Done())

	var results, failures int
	for _, err := range arr.All() {
		results++
		if err != nil {
			failures++
		}
	}
	s.Assert().Equal(3, results)
	s.Assert().Equal(1, failures)

	_, err = arr.Collect()
	s.Assert().ErrorIs(err, InvalidEncoding)
}

func (s *ArrayTestSuite) TestAllStopsEarly() {
	arr, err := DecodeArray[pair](NewCursor(s.buf), 5)
	s.Require().NoError(err)

	var seen []pair
	for v, err := range arr.All() {
		s.Require().NoError(err)
		seen = append(seen, v)
		if len(seen) == 2 {
			break
		}
	}
	s.Assert().Len(seen, 2)
}

func (s *ArrayTestSuite) TestWithArgument() {
	c := NewCursor([]byte{1, 2, 3})
	arr, err := DecodeArrayWith[scaled](c, 3, 100)
	s.Require().NoError(err)

	got, err := arr.Collect()
	s.Require().NoError(err)
	s.Assert().Equal([]scaled{100, 200, 300}, got)
}

func (s *ArrayTestSuite) TestAsDecodeWith() {
	// DecodeArray is shorthand for decoding an Array with an ArrayArg.
	c := NewCursor(s.buf)
	arr, err := DecodeWith[Array[pair, Unit]](c, ArrayArg[Unit]{Length: 2})
	s.Require().NoError(err)
	s.Assert().Equal(8, c.Offset())

	v, err := arr.At(1)
	s.Require().NoError(err)
	s.Assert().Equal(pair{A: 3, B: 4}, v)
}

func (s *ArrayTestSuite) TestConstructionErrors() {
	c := NewCursor(s.buf)
	_, err := DecodeArray[pair](c, 6)
	s.Assert().ErrorIs(err, InsufficientBytes)
	s.Assert().Equal(0, c.Offset())

	_, err = DecodeArray[pair](c, -1)
	s.Assert().ErrorIs(err, InvalidEncoding)
	s.Assert().Equal(0, c.Offset())

	// A count that would overflow the size computation is still just too long.
	_, err = DecodeArray[pair](c, int(^uint(0)>>1))
	s.Assert().ErrorIs(err, InsufficientBytes)
}

func (s *ArrayTestSuite) TestRandomAccess() {
	arr, err := DecodeArray[pair](NewCursor(s.buf), 5)
	s.Require().NoError(err)

	v, err := arr.At(4)
	s.Require().NoError(err)
	s.Assert().Equal(pair{A: 9, B: 10}, v)

	s.Assert().Panics(func() { _, _ = arr.At(5) })
	s.Assert().Panics(func() { _, _ = arr.At(-1) })
}

func (s *ArrayTestSuite) TestFind() {
	arr, err := DecodeArray[pair](NewCursor(s.buf), 5)
	s.Require().NoError(err)

	v, i, err := arr.Find(func(p pair) bool { return p.B == 6 })
	s.Require().NoError(err)
	s.Assert().Equal(2, i)
	s.Assert().Equal(Uint16(5), v.A)

	_, i, err = arr.Find(func(p pair) bool { return p.A == 100 })
	s.Require().NoError(err)
	s.Assert().Equal(-1, i)
}

func (s *ArrayTestSuite) TestSearch() {
	arr, err := DecodeArray[pair](NewCursor(s.buf), 5)
	s.Require().NoError(err)

	for want := 0; want < 5; want++ {
		target := Uint16(2*want + 1)
		v, i, err := arr.Search(func(p pair) int { return int(p.A) - int(target) })
		s.Require().NoError(err)
		s.Assert().Equal(want, i)
		s.Assert().Equal(target, v.A)
	}

	_, i, err := arr.Search(func(p pair) int { return int(p.A) - 4 })
	s.Require().NoError(err)
	s.Assert().Equal(-1, i)

	empty, err := DecodeArray[pair](NewCursor(nil), 0)
	s.Require().NoError(err)
	_, i, err = empty.Search(func(pair) int { return 0 })
	s.Require().NoError(err)
	s.Assert().Equal(-1, i)
}

// TestArray runs the ArrayTestSuite.
func TestArray(t *testing.T) {
	suite.Run(t, new(ArrayTestSuite))
}

// --- Standalone Array Tests ---

func TestArrayRejectsUnsizedElements(t *testing.T) {
	// liar has no static size; only the generic DecodeWith path can even name it.
	assert.Panics(t, func() {
		_, _ = DecodeWith[Array[liar, Unit]](NewCursor(nil), ArrayArg[Unit]{})
	})
}

func TestArrayRejectsMismatchedArgument(t *testing.T) {
	// pair takes no argument, so it cannot be decoded with an int.
	assert.Panics(t, func() {
		_, _ = DecodeWith[Array[pair, int]](NewCursor(nil), ArrayArg[int]{Item: 1})
	})
}

func TestArrayZeroValue(t *testing.T) {
	var arr Array[pair, Unit]
	assert.Equal(t, 0, arr.Len())
	assert.Equal(t, 0, arr.Size())

	got, err := arr.Collect()
	require.NoError(t, err)
	assert.Empty(t, got)
}
