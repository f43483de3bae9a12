package codec

import "errors"

// ErrorKind classifies every decode failure. The set is closed: a decoder
// reports exactly one of the kinds below and nothing else.
type ErrorKind uint8

const (
	// InsufficientBytes indicates that fewer bytes remain than the type requires.
	InsufficientBytes ErrorKind = iota + 1

	// InvalidEncoding indicates that the bytes form no valid value of the
	// target type, e.g. an unrecognized discriminant.
	InvalidEncoding

	// InvalidVersion indicates that a magic or version field matches none of
	// the recognized constants.
	InvalidVersion
)

func (k ErrorKind) Error() string {
	switch k {
	case InsufficientBytes:
		return "codec: insufficient bytes"
	case InvalidEncoding:
		return "codec: invalid encoding"
	case InvalidVersion:
		return "codec: invalid version"
	}
	return "codec: unknown error kind"
}

// KindOf extracts the ErrorKind from err, looking through any wrapping.
func KindOf(err error) (ErrorKind, bool) {
	var k ErrorKind
	if errors.As(err, &k) {
		return k, true
	}
	return 0, false
}

var (
	// ErrInvalidSeek indicates a seek was attempted to invalid position.
	ErrInvalidSeek = errors.New("codec: seek to a invalid position")

	// ErrInvalidWhence indicates that an invalid 'whence' parameter was provided to a Seek operation.
	ErrInvalidWhence = errors.New("codec: unsupported whence")
)
