package codec

import "io"

// Cursor is a read-only view over a caller-owned buffer plus a read
// position. Successful decodes advance the position; nothing ever writes to
// the buffer, so any number of cursors may share one buffer.
type Cursor struct {
	b []byte // underlying buffer, never modified
	n int    // current read position
}

// NewCursor creates a Cursor positioned at the start of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{b: b}
}

// Remaining returns the unread suffix of the buffer. The slice aliases the
// buffer; it is not a copy.
func (c *Cursor) Remaining() []byte {
	return c.b[c.n:]
}

// Offset returns the current read position, relative to the buffer start.
func (c *Cursor) Offset() int {
	return c.n
}

// Size returns the size of the underlying byte slice.
func (c *Cursor) Size() int {
	return len(c.b)
}

// Available returns the number of bytes available for reading.
func (c *Cursor) Available() int {
	return len(c.b) - c.n
}

// Reset rewinds the cursor to the start of the buffer.
func (c *Cursor) Reset() {
	c.n = 0
}

// Fork returns an independent cursor over the same buffer at the same position.
func (c *Cursor) Fork() *Cursor {
	return &Cursor{b: c.b, n: c.n}
}

// advance moves the position to the start of rest, which must be a suffix of
// Remaining. A longer rest means a decoder reported consuming a negative
// number of bytes, which is a bug in that decoder.
func (c *Cursor) advance(rest []byte) {
	consumed := len(c.b) - c.n - len(rest)
	if consumed < 0 {
		panic("codec: decoder returned more bytes than it was given")
	}
	c.n += consumed
}

// Read implements the [io.Reader] interface. It copies, so prefer the
// decode functions when the bytes do not need to outlive the buffer.
func (c *Cursor) Read(p []byte) (int, error) {
	if c.n >= len(c.b) {
		return 0, io.EOF
	}
	n := copy(p, c.b[c.n:])
	c.n += n
	return n, nil
}

// ReadByte implements the [io.ByteReader] interface.
func (c *Cursor) ReadByte() (byte, error) {
	if c.n >= len(c.b) {
		return 0, io.EOF
	}
	b := c.b[c.n]
	c.n++
	return b, nil
}

// Seek implements the [io.Seeker] interface. Positions outside the buffer
// are rejected so Remaining is always valid.
func (c *Cursor) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(c.n) + offset
	case io.SeekEnd:
		abs = int64(len(c.b)) + offset
	default:
		return int64(c.n), ErrInvalidWhence
	}

	if abs < 0 || abs > int64(len(c.b)) {
		return int64(c.n), ErrInvalidSeek
	}

	c.n = int(abs)
	return abs, nil
}
