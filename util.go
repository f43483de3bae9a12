package codec

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

var (
	BE = binary.BigEndian
	// Order is the byte order of every multi-byte value this package decodes.
	Order = BE
)

// Roundup rounds n up to the nearest multiple of align, which must be a power of two.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }

// MAX_PADDING defines the maximum number of trailing bytes Unmarshal accepts.
// Anything larger is considered a malformed payload rather than padding.
const MAX_PADDING = 1024 // 1KB

// CheckTrailingZeros verifies that b is short zero padding. It reports
// InvalidEncoding for a non-zero byte or for more than MAX_PADDING bytes.
func CheckTrailingZeros(b []byte) error {
	if len(b) > MAX_PADDING {
		return InvalidEncoding
	}
	for _, v := range b {
		if v != 0 {
			return InvalidEncoding
		}
	}
	return nil
}

// readUint reads a big-endian unsigned integer of size bytes from the head of b.
// The caller guarantees len(b) >= size.
func readUint[T constraints.Integer](b []byte, size int) T {
	var u uint64
	for _, v := range b[:size] {
		u = u<<8 | uint64(v)
	}
	return T(u)
}
