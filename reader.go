package strbuf

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Reader reads the buffer's content as a stream. It implements [io.Reader],
// [io.ByteReader], [io.RuneReader] and [io.Seeker].
//
// A Reader is a view over the buffer's parts; mutating the buffer while
// reading through it gives unspecified results.
type Reader struct {
	b    *Buffer
	pnum int // Index of the current part.
	pos  int // Read position within the current part.
}

// NewReader returns a Reader positioned at the start of the content.
func (b *Buffer) NewReader() *Reader {
	return &Reader{b: b}
}

// Offset returns the global byte offset of the next read.
func (r *Reader) Offset() int {
	return r.b.localToGlobal(r.pnum, r.pos)
}

// Reset rewinds the reader to the start of the content.
func (r *Reader) Reset() {
	r.pnum = 0
	r.pos = 0
}

// Seek sets the offset for the next read. It implements [io.Seeker].
//
// Seeking before the start of the content is an error. Seeking past the end
// is allowed and leaves the reader at end of file.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(r.Offset()) + offset
	case io.SeekEnd:
		abs = int64(r.b.Len()) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, errors.New("invalid offset: cannot be negative")
	}
	if abs >= int64(r.b.Len()) {
		r.pnum = len(r.b.parts)
		r.pos = 0
		return abs, nil
	}
	seen := 0
	for pnum, p := range r.b.parts {
		if int(abs)-seen < len(p) {
			r.pnum = pnum
			r.pos = int(abs) - seen
			return abs, nil
		}
		seen += len(p)
	}
	panic(fmt.Errorf("internal error: unreachable seek offset %d with length %d", abs, r.b.Len()))
}

// Read reads up to len(p) bytes into p. It returns [io.EOF] only when no
// bytes were read.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := 0
	for n < len(p) {
		if r.pnum >= len(r.b.parts) {
			if n > 0 {
				return n, nil
			}
			return 0, io.EOF
		}
		part := r.b.parts[r.pnum]
		if r.pos >= len(part) {
			r.pnum++
			r.pos = 0
			continue
		}
		c := copy(p[n:], part[r.pos:])
		n += c
		r.pos += c
	}
	return n, nil
}

// ReadByte reads a single byte. It implements [io.ByteReader].
func (r *Reader) ReadByte() (byte, error) {
	for r.pnum < len(r.b.parts) && r.pos >= len(r.b.parts[r.pnum]) {
		r.pnum++
		r.pos = 0
	}
	if r.pnum >= len(r.b.parts) {
		return 0, io.EOF
	}
	c := r.b.parts[r.pnum][r.pos]
	r.pos++
	return c, nil
}

// ReadRune reads a single UTF-8 encoded rune, stitching bytes that straddle
// a part boundary. It implements [io.RuneReader].
func (r *Reader) ReadRune() (rune, int, error) {
	c, err := r.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	if c < utf8.RuneSelf {
		return rune(c), 1, nil
	}
	var buf [utf8.UTFMax]byte
	buf[0] = c
	n := 1
	for n < runeLen(c) {
		c2, err := r.ReadByte()
		if err != nil {
			break
		}
		if c2&0xC0 != 0x80 {
			// Not a continuation byte; leave it for the next read.
			r.pos--
			break
		}
		buf[n] = c2
		n++
	}
	rn, size := utf8.DecodeRune(buf[:n])
	return rn, size, nil
}
