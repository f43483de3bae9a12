package codec

// Decode decodes one T at the cursor and advances past it. On error the
// cursor is left exactly where it was.
func Decode[T any, P Decoder[T]](c *Cursor) (T, error) {
	var v T
	rest, err := P(&v).Decode(c.Remaining())
	if err != nil {
		var zero T
		return zero, err
	}
	c.advance(rest)
	return v, nil
}

// DecodeWith is Decode for types that need an argument.
func DecodeWith[T, A any, P DecoderWith[T, A]](c *Cursor, arg A) (T, error) {
	var v T
	rest, err := P(&v).DecodeWith(c.Remaining(), arg)
	if err != nil {
		var zero T
		return zero, err
	}
	c.advance(rest)
	return v, nil
}

// DecodeArray decodes a lazy array of length argument-free elements.
// It is shorthand for DecodeWith[Array[T, Unit]] with ArrayArg{Length: length}.
func DecodeArray[T any, P interface {
	*T
	Decodable
	StaticSizer
}](c *Cursor, length int) (Array[T, Unit], error) {
	return DecodeWith[Array[T, Unit]](c, ArrayArg[Unit]{Length: length})
}

// DecodeArrayWith decodes a lazy array of length elements that all share arg.
func DecodeArrayWith[T, A any, P interface {
	*T
	DecodableWith[A]
	StaticSizer
}](c *Cursor, length int, arg A) (Array[T, A], error) {
	return DecodeWith[Array[T, A]](c, ArrayArg[A]{Length: length, Item: arg})
}

// Align skips padding up to the next multiple of n bytes from the start of
// the buffer. n must be a power of two; 0 and 1 mean no alignment.
func Align(c *Cursor, n int) error {
	if n <= 1 {
		return nil
	}
	if n&(n-1) != 0 {
		panic("codec: alignment must be a power of two")
	}
	pad := Roundup(c.n, n) - c.n
	if pad > c.Available() {
		return InsufficientBytes
	}
	c.n += pad
	return nil
}

// Unmarshal decodes a T that must span all of data. Trailing bytes are
// tolerated only as zero padding of at most MAX_PADDING bytes.
func Unmarshal[T any, P Decoder[T]](data []byte) (T, error) {
	c := NewCursor(data)
	v, err := Decode[T, P](c)
	if err != nil {
		return v, err
	}
	if err := CheckTrailingZeros(c.Remaining()); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
