package strbuf

import (
	"fmt"
	"strings"
)

// Find returns the byte offset of the first occurrence of sub within
// [start, end), or -1 if absent. Offsets may be negative to count from the
// end and are clamped to the content bounds.
func (b *Buffer) Find(sub string, start, end int) int {
	n := b.Len()
	start = clampOffset(start, n)
	end = clampOffset(end, n)
	if start > end {
		return -1
	}
	if sub == "" {
		return start
	}
	if end-start < len(sub) {
		return -1
	}

	// Scan part by part, carrying the last len(sub)-1 scanned bytes into
	// the next window so a match straddling any number of parts is seen.
	window := ""
	windowStart := start
	p0, o0 := b.locate(start)
	p1, o1 := b.locate(end)
	for pnum := p0; pnum <= p1; pnum++ {
		seg := b.parts[pnum]
		lo, hi := 0, len(seg)
		if pnum == p0 {
			lo = o0
		}
		if pnum == p1 {
			hi = o1
		}
		seg = seg[lo:hi]

		scan := window + seg
		if i := strings.Index(scan, sub); i >= 0 {
			return windowStart + i
		}
		windowStart += len(scan)
		if carry := len(sub) - 1; carry < len(scan) {
			window = scan[len(scan)-carry:]
		} else {
			window = scan
		}
		windowStart -= len(window)
	}
	return -1
}

// FindLast returns the byte offset of the last occurrence of sub within
// [start, end), or -1 if absent. Offsets may be negative to count from the
// end and are clamped to the content bounds.
func (b *Buffer) FindLast(sub string, start, end int) int {
	n := b.Len()
	start = clampOffset(start, n)
	end = clampOffset(end, n)
	if start > end {
		return -1
	}
	if sub == "" {
		return end
	}
	if end-start < len(sub) {
		return -1
	}

	// Mirror image of Find: walk the parts backwards, carrying the first
	// len(sub)-1 bytes of each scanned window.
	window := ""
	windowStart := end
	p0, o0 := b.locate(start)
	p1, o1 := b.locate(end)
	for pnum := p1; pnum >= p0; pnum-- {
		seg := b.parts[pnum]
		lo, hi := 0, len(seg)
		if pnum == p1 {
			hi = o1
		}
		if pnum == p0 {
			lo = o0
		}
		seg = seg[lo:hi]

		scan := seg + window
		windowStart -= len(seg)
		if i := strings.LastIndex(scan, sub); i >= 0 {
			return windowStart + i
		}
		if carry := len(sub) - 1; carry < len(scan) {
			window = scan[:carry]
		} else {
			window = scan
		}
	}
	return -1
}

// clampOffset normalizes a possibly negative offset and clamps it to [0, n].
func clampOffset(offset, n int) int {
	if offset < 0 {
		offset += n
	}
	return min(max(offset, 0), n)
}

// Index is like Find over the whole content but returns ErrNotFound instead
// of -1.
func (b *Buffer) Index(sub string) (int, error) {
	if i := b.Find(sub, 0, b.Len()); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrNotFound, sub)
}

// IndexLast is like FindLast over the whole content but returns ErrNotFound
// instead of -1.
func (b *Buffer) IndexLast(sub string) (int, error) {
	if i := b.FindLast(sub, 0, b.Len()); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrNotFound, sub)
}

// Contains reports whether sub occurs in the content.
func (b *Buffer) Contains(sub string) bool {
	return b.Find(sub, 0, b.Len()) >= 0
}

// HasPrefix reports whether the content starts with prefix.
func (b *Buffer) HasPrefix(prefix string) bool {
	for _, p := range b.parts {
		if prefix == "" {
			return true
		}
		n := min(len(p), len(prefix))
		if p[:n] != prefix[:n] {
			return false
		}
		prefix = prefix[n:]
	}
	return prefix == ""
}

// HasSuffix reports whether the content ends with suffix.
func (b *Buffer) HasSuffix(suffix string) bool {
	for pnum := len(b.parts) - 1; pnum >= 0; pnum-- {
		if suffix == "" {
			return true
		}
		p := b.parts[pnum]
		n := min(len(p), len(suffix))
		if p[len(p)-n:] != suffix[len(suffix)-n:] {
			return false
		}
		suffix = suffix[:len(suffix)-n]
	}
	return suffix == ""
}

// Cut slices the content around the first occurrence of sep, returning new
// buffers for the text before and after it. When sep is absent, found is
// false and before holds a copy of the whole content.
func (b *Buffer) Cut(sep string) (before, after *Buffer, found bool) {
	i := b.Find(sep, 0, b.Len())
	if i < 0 {
		return b.Clone(), b.emptyLike(), false
	}
	before, err := b.Slice(0, i)
	if err != nil {
		panic(fmt.Errorf("internal error: cut: %w", err))
	}
	after, err = b.Slice(i+len(sep), b.Len())
	if err != nil {
		panic(fmt.Errorf("internal error: cut: %w", err))
	}
	return before, after, true
}

// CutLast slices the content around the last occurrence of sep. When sep is
// absent, found is false and after holds a copy of the whole content.
func (b *Buffer) CutLast(sep string) (before, after *Buffer, found bool) {
	i := b.FindLast(sep, 0, b.Len())
	if i < 0 {
		return b.emptyLike(), b.Clone(), false
	}
	before, err := b.Slice(0, i)
	if err != nil {
		panic(fmt.Errorf("internal error: cut last: %w", err))
	}
	after, err = b.Slice(i+len(sep), b.Len())
	if err != nil {
		panic(fmt.Errorf("internal error: cut last: %w", err))
	}
	return before, after, true
}

// Split slices the content around each occurrence of sep, returning the
// pieces as plain strings. An empty sep splits after every rune.
func (b *Buffer) Split(sep string) []string {
	return b.SplitN(sep, -1)
}

// SplitN is like Split but stops after n-1 cuts, with the last piece
// holding the remainder. n < 0 means no limit and n == 0 yields nil.
func (b *Buffer) SplitN(sep string, n int) []string {
	if n == 0 {
		return nil
	}
	if sep == "" {
		return strings.SplitN(b.String(), sep, n)
	}
	var out []string
	start := 0
	for n < 0 || len(out) < n-1 {
		i := b.Find(sep, start, b.Len())
		if i < 0 {
			break
		}
		piece, err := b.Substring(start, i)
		if err != nil {
			panic(fmt.Errorf("internal error: split: %w", err))
		}
		out = append(out, piece)
		start = i + len(sep)
	}
	tail, err := b.Substring(start, b.Len())
	if err != nil {
		panic(fmt.Errorf("internal error: split: %w", err))
	}
	return append(out, tail)
}

// SplitLines splits on line boundaries ("\n", "\r" and "\r\n"), without
// including the terminators. A trailing terminator does not produce a final
// empty line.
func (b *Buffer) SplitLines() []string {
	var (
		lines  []string
		cur    strings.Builder
		prevCR bool
		open   bool // Bytes seen since the last terminator.
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		open = false
	}
	for _, p := range b.parts {
		for i := 0; i < len(p); i++ {
			c := p[i]
			switch {
			case c == '\n':
				if prevCR {
					prevCR = false
					continue // Second half of \r\n.
				}
				flush()
			case c == '\r':
				flush()
				prevCR = true
			default:
				cur.WriteByte(c)
				open = true
				prevCR = false
			}
		}
	}
	if open {
		flush()
	}
	return lines
}
