package codec

// Decodable is implemented by types that decode themselves from the head of
// a byte buffer. On success Decode returns the suffix of buf left after the
// consumed prefix. buf is never written to, but the receiver may keep
// sub-slices of it, so a decoded value is only valid while buf is.
//
// On failure the returned rest is meaningless; callers treat a failed decode
// as consuming nothing.
type Decodable interface {
	Decode(buf []byte) (rest []byte, err error)
}

// DecodableWith is the argument-taking form of Decodable, for encodings whose
// shape depends on context decoded earlier (an element count, a format
// version, a nested argument).
type DecodableWith[A any] interface {
	DecodeWith(buf []byte, arg A) (rest []byte, err error)
}

// Unit is the empty argument.
type Unit struct{}

// NoArg adapts a Decodable into a DecodableWith[Unit]. It is the only bridge
// between the two contracts: argument-free decoders are never treated as
// argument-taking ones implicitly.
type NoArg[D Decodable] struct {
	D D
}

var _ DecodableWith[Unit] = NoArg[Decodable]{}

// DecodeWith forwards to the wrapped Decode, ignoring the argument.
func (n NoArg[D]) DecodeWith(buf []byte, _ Unit) ([]byte, error) {
	return n.D.Decode(buf)
}

// Decoder constrains a type parameter to the pointer form of a Decodable T,
// so generic entry points can allocate a T and decode into it.
type Decoder[T any] interface {
	*T
	Decodable
}

// DecoderWith is Decoder for DecodableWith.
type DecoderWith[T, A any] interface {
	*T
	DecodableWith[A]
}

// StaticSizer is implemented by types whose encoded length is a constant of
// the type, known before any byte is read. StaticSize must not depend on the
// receiver's contents; it is called on zero values.
type StaticSizer interface {
	StaticSize() int
}

// Sizer is an interface for types that can report their binary size once decoded.
type Sizer interface {
	// Size returns the size of the type in bytes when binary encoded.
	Size() int
}

// SizeOf reports the encoded size of v. A Sizer reports its computed size;
// any StaticSizer reports its constant, which makes every static type usable
// wherever a dynamic size is needed.
func SizeOf(v any) (int, bool) {
	switch s := v.(type) {
	case Sizer:
		return s.Size(), true
	case StaticSizer:
		return s.StaticSize(), true
	}
	return 0, false
}

// StaticSizeOf reports the static size of T, or false if neither T nor *T
// implements StaticSizer.
func StaticSizeOf[T any]() (int, bool) {
	var zero T
	if s, ok := any(&zero).(StaticSizer); ok {
		return s.StaticSize(), true
	}
	return 0, false
}
