package strbuf

import (
	"fmt"
	"strings"
	"unicode"
)

// Append adds s at the end of the buffer.
func (b *Buffer) Append(s string) {
	b.appendAt(len(b.parts)-1, s, b.partFill)
}

// appendAt writes s starting at the end of part pnum, filling parts to
// fillTo bytes. Content after part pnum is pushed right, never overwritten.
func (b *Buffer) appendAt(pnum int, s string, fillTo int) {
	if fillTo < 1 || fillTo > b.partMax {
		fillTo = b.partMax
	}
	if pnum < 0 || pnum >= len(b.parts) {
		panic(fmt.Errorf("internal error: part index %d out of range with %d parts", pnum, len(b.parts)))
	}

	// Fill the anchor part up to fillTo.
	if room := fillTo - len(b.parts[pnum]); room > 0 {
		take := min(room, len(s))
		b.parts[pnum] += s[:take]
		s = s[take:]
	}

	// Carve off new parts until the remainder fits comfortably into the
	// part on the right.
	availRight := 0
	if pnum < len(b.parts)-1 {
		availRight = b.availIn(pnum+1, fillTo)
	}
	for len(s) > availRight {
		take := min(len(s), fillTo)
		b.insertPart(pnum+1, s[:take])
		s = s[take:]
		pnum++
	}

	// Slip the dregs in at the front of the next part.
	if len(s) > 0 {
		b.parts[pnum+1] = s + b.parts[pnum+1]
	}
}

// Insert splices s in at the given offset. Negative offsets count from the
// end and offset == Len() appends.
func (b *Buffer) Insert(offset int, s string) error {
	off, err := b.resolve(offset)
	if err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	pnum, local := b.locate(off)

	// Fast path: splice within the part when the result stays under the cap.
	if len(b.parts[pnum])+len(s) <= b.partMax {
		p := b.parts[pnum]
		b.parts[pnum] = p[:local] + s + p[local:]
		return nil
	}

	// Break the part at the splice point and append onto the left half.
	switch {
	case local == 0:
		// Nothing to keep on the left; give the appender an empty anchor.
		b.insertPart(pnum, "")
	case local < len(b.parts[pnum]):
		b.splitPart(pnum, local)
	}
	b.appendAt(pnum, s, b.partFill)
	return nil
}

// Delete removes the bytes in [start, end). Negative offsets count from the
// end.
func (b *Buffer) Delete(start, end int) error {
	p0, o0, p1, o1, err := b.resolveRange(start, end)
	if err != nil {
		return err
	}
	if p0 == p1 {
		p := b.parts[p0]
		b.parts[p0] = p[:o0] + p[o1:]
		if len(b.parts[p0]) == 0 {
			b.deletePart(p0)
		} else {
			b.tryCoalesce(p0)
		}
		return nil
	}

	// Truncate the end part first, then drop enclosed parts from the right
	// so earlier part numbers stay stable.
	b.parts[p1] = b.parts[p1][o1:]
	if len(b.parts[p1]) == 0 {
		b.deletePart(p1)
	}
	for pnum := p1 - 1; pnum > p0; pnum-- {
		b.deletePart(pnum)
	}
	b.parts[p0] = b.parts[p0][:o0]
	if len(b.parts[p0]) == 0 {
		b.deletePart(p0)
	} else {
		b.tryCoalesce(p0)
	}
	return nil
}

// Trim removes leading and trailing bytes contained in cutset.
func (b *Buffer) Trim(cutset string) {
	b.TrimLeft(cutset)
	b.TrimRight(cutset)
}

// TrimLeft removes leading bytes contained in cutset.
func (b *Buffer) TrimLeft(cutset string) {
	b.trimLeading(func(p string) string { return strings.TrimLeft(p, cutset) })
}

// TrimRight removes trailing bytes contained in cutset.
func (b *Buffer) TrimRight(cutset string) {
	b.trimTrailing(func(p string) string { return strings.TrimRight(p, cutset) })
}

// TrimSpace removes leading and trailing Unicode white space.
func (b *Buffer) TrimSpace() {
	b.TrimSpaceLeft()
	b.TrimSpaceRight()
}

// TrimSpaceLeft removes leading Unicode white space.
func (b *Buffer) TrimSpaceLeft() {
	b.trimLeading(func(p string) string { return strings.TrimLeftFunc(p, unicode.IsSpace) })
}

// TrimSpaceRight removes trailing Unicode white space.
func (b *Buffer) TrimSpaceRight() {
	b.trimTrailing(func(p string) string { return strings.TrimRightFunc(p, unicode.IsSpace) })
}

// trimLeading trims the first part and drops it when fully consumed,
// repeating until the trimmer leaves content or the buffer is empty.
func (b *Buffer) trimLeading(trim func(string) string) {
	for {
		trimmed := trim(b.parts[0])
		if trimmed != "" {
			b.parts[0] = trimmed
			return
		}
		if !b.deletePart(0) {
			return
		}
	}
}

func (b *Buffer) trimTrailing(trim func(string) string) {
	for {
		last := len(b.parts) - 1
		trimmed := trim(b.parts[last])
		if trimmed != "" {
			b.parts[last] = trimmed
			return
		}
		if !b.deletePart(last) {
			return
		}
	}
}

// TrimPrefix removes the leading prefix if present and reports whether it
// was removed.
func (b *Buffer) TrimPrefix(prefix string) bool {
	if len(prefix) == 0 || !b.HasPrefix(prefix) {
		return false
	}
	if err := b.Delete(0, len(prefix)); err != nil {
		panic(fmt.Errorf("internal error: trim prefix: %w", err))
	}
	return true
}

// TrimSuffix removes the trailing suffix if present and reports whether it
// was removed.
func (b *Buffer) TrimSuffix(suffix string) bool {
	if len(suffix) == 0 || !b.HasSuffix(suffix) {
		return false
	}
	n := b.Len()
	if err := b.Delete(n-len(suffix), n); err != nil {
		panic(fmt.Errorf("internal error: trim suffix: %w", err))
	}
	return true
}

// ExpandTabs replaces tab characters with spaces so the following text lands
// on the next multiple-of-tabSize column. Columns reset after a line break,
// and the running column carries across part boundaries so a line straddling
// parts expands the same way a contiguous string would. A tabSize <= 0
// removes tabs outright.
func (b *Buffer) ExpandTabs(tabSize int) {
	col := 0
	out := b.emptyLike()
	var sb strings.Builder
	for _, p := range b.parts {
		sb.Reset()
		sb.Grow(len(p))
		for i := 0; i < len(p); i++ {
			c := p[i]
			switch {
			case c == '\t':
				if tabSize > 0 {
					pad := tabSize - col%tabSize
					sb.WriteString(strings.Repeat(" ", pad))
					col += pad
				}
			case c == '\n' || c == '\r':
				sb.WriteByte(c)
				col = 0
			default:
				sb.WriteByte(c)
				if c&0xC0 != 0x80 {
					col++
				}
			}
		}
		out.Append(sb.String())
	}
	b.parts = out.parts
}

// PadRight appends copies of fill until the content is width runes long.
func (b *Buffer) PadRight(width int, fill rune) {
	if n := width - b.RuneCount(); n > 0 {
		b.Append(strings.Repeat(string(fill), n))
	}
}

// PadLeft prepends copies of fill until the content is width runes long.
func (b *Buffer) PadLeft(width int, fill rune) {
	if n := width - b.RuneCount(); n > 0 {
		if err := b.Insert(0, strings.Repeat(string(fill), n)); err != nil {
			panic(fmt.Errorf("internal error: pad left: %w", err))
		}
	}
}

// Center pads both sides with fill until the content is width runes long.
// The extra rune of an odd amount of padding goes on the right.
func (b *Buffer) Center(width int, fill rune) {
	n := width - b.RuneCount()
	if n <= 0 {
		return
	}
	left := n / 2
	if err := b.Insert(0, strings.Repeat(string(fill), left)); err != nil {
		panic(fmt.Errorf("internal error: center: %w", err))
	}
	b.Append(strings.Repeat(string(fill), n-left))
}

// ZeroFill left-pads with '0' until the content is width runes long.
func (b *Buffer) ZeroFill(width int) {
	b.PadLeft(width, '0')
}

// Reverse reverses the content rune-wise.
func (b *Buffer) Reverse() {
	runes := []rune(b.String())
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	b.setString(string(runes))
}

// Repeat returns a new buffer holding count concatenated copies of s,
// chunked under b's configuration.
func (b *Buffer) Repeat(s string, count int) *Buffer {
	out := b.emptyLike()
	for range count {
		out.Append(s)
	}
	return out
}

// Join returns a new buffer holding the elements of elems separated by sep,
// chunked under b's configuration.
func (b *Buffer) Join(elems []string, sep string) *Buffer {
	out := b.emptyLike()
	for i, e := range elems {
		if i > 0 {
			out.Append(sep)
		}
		out.Append(e)
	}
	return out
}

// setString replaces the content with s, re-chunking to the working size.
func (b *Buffer) setString(s string) {
	b.parts = []string{""}
	b.Append(s)
}
