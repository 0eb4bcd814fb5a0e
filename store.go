package strbuf

import (
	"fmt"
)

// DefaultRepackTolerance is how far a part's length may drift from the
// working size before Repack moves content between parts.
const DefaultRepackTolerance = 64

// resolve normalizes an offset to a non-negative one. Negative offsets count
// from the end. An offset equal to Len() is valid (insertion point past the
// last byte).
func (b *Buffer) resolve(offset int) (int, error) {
	n := b.Len()
	off := offset
	if off < 0 {
		off += n
	}
	if off < 0 || off > n {
		return 0, fmt.Errorf("%w: offset %d with length %d", ErrOffsetOutOfRange, offset, n)
	}
	return off, nil
}

// resolveRange normalizes a [start, end) pair and translates both ends to
// part positions.
func (b *Buffer) resolveRange(start, end int) (p0, o0, p1, o1 int, err error) {
	s, err := b.resolve(start)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	e, err := b.resolve(end)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if s > e {
		return 0, 0, 0, 0, fmt.Errorf("%w: [%d, %d)", ErrRangeInvalid, s, e)
	}
	p0, o0 = b.locate(s)
	p1, o1 = b.locate(e)
	return p0, o0, p1, o1, nil
}

// locate translates a normalized offset to a part number and a local offset
// within that part. An offset on a part boundary maps to the end of the
// earlier part, so locate(Len()) points one past the last byte of the last
// part.
func (b *Buffer) locate(offset int) (int, int) {
	seen := 0
	for pnum, p := range b.parts {
		if offset-seen <= len(p) {
			return pnum, offset - seen
		}
		seen += len(p)
	}
	panic(fmt.Errorf("internal error: offset %d out of range of length %d", offset, b.Len()))
}

// locateRead is like locate but for reading a byte: the returned local
// offset is always strictly inside the returned part.
func (b *Buffer) locateRead(offset int) (int, int, error) {
	off, err := b.resolve(offset)
	if err != nil {
		return 0, 0, err
	}
	seen := 0
	for pnum, p := range b.parts {
		if off-seen < len(p) {
			return pnum, off - seen, nil
		}
		seen += len(p)
	}
	return 0, 0, fmt.Errorf("%w: offset %d with length %d", ErrOffsetOutOfRange, offset, b.Len())
}

// localToGlobal converts a part number and local offset back to a global
// byte offset.
func (b *Buffer) localToGlobal(pnum, local int) int {
	total := 0
	for _, p := range b.parts[:pnum] {
		total += len(p)
	}
	return total + local
}

// insertPart inserts a new part immediately before part pnum.
func (b *Buffer) insertPart(pnum int, s string) {
	if len(s) > b.partMax {
		panic(fmt.Errorf("internal error: part of length %d exceeds max %d", len(s), b.partMax))
	}
	b.parts = append(b.parts, "")
	copy(b.parts[pnum+1:], b.parts[pnum:])
	b.parts[pnum] = s
}

// deletePart removes part pnum. The sole remaining part is never removed,
// only emptied. It reports whether the part count shrank. Negative pnum
// counts from the end.
func (b *Buffer) deletePart(pnum int) bool {
	if pnum < 0 {
		pnum += len(b.parts)
	}
	if pnum < 0 || pnum >= len(b.parts) {
		panic(fmt.Errorf("internal error: part index %d out of range with %d parts", pnum, len(b.parts)))
	}
	if len(b.parts) == 1 {
		b.parts[0] = ""
		return false
	}
	b.parts = append(b.parts[:pnum], b.parts[pnum+1:]...)
	return true
}

// splitPart splits part pnum at a local offset, moving the right half into
// the front of the following part when it fits under the cap, otherwise
// into a new part. The local offset must be inside the part and non-zero.
func (b *Buffer) splitPart(pnum, local int) {
	p := b.parts[pnum]
	if local <= 0 || local >= len(p) {
		panic(fmt.Errorf("internal error: split offset %d out of range (0, %d)", local, len(p)))
	}
	right := p[local:]
	if b.availIn(pnum+1, b.partMax) >= len(right) {
		b.parts[pnum+1] = right + b.parts[pnum+1]
	} else {
		b.insertPart(pnum+1, right)
	}
	b.parts[pnum] = p[:local]
}

// availIn returns how many bytes still fit into part pnum under the given
// limit, or 0 if the part does not exist.
func (b *Buffer) availIn(pnum, limit int) int {
	if pnum < 0 || pnum >= len(b.parts) {
		return 0
	}
	return max(0, limit-len(b.parts[pnum]))
}

// coalesce distributes part pnum's content into its neighbors and removes
// the part. It reports whether the part was removed. Content moved right is
// prepended to the right neighbor so byte order is preserved.
func (b *Buffer) coalesce(pnum int) bool {
	availL, availR := 0, 0
	if pnum > 0 {
		availL = b.partMax - len(b.parts[pnum-1])
	}
	if pnum+1 < len(b.parts) {
		availR = b.partMax - len(b.parts[pnum+1])
	}
	needed := len(b.parts[pnum])
	if needed == 0 || needed > availL+availR {
		return false
	}
	putL := min(availL, needed)
	if putL > 0 {
		b.parts[pnum-1] += b.parts[pnum][:putL]
	}
	if putL < needed {
		b.parts[pnum+1] = b.parts[pnum][putL:] + b.parts[pnum+1]
	}
	return b.deletePart(pnum)
}

// tryCoalesce merges part pnum into its neighbors when it has shrunk well
// below the working size.
func (b *Buffer) tryCoalesce(pnum int) {
	if pnum < 0 || pnum >= len(b.parts) || len(b.parts) == 1 {
		return
	}
	if len(b.parts[pnum])*4 >= b.partFill {
		return
	}
	b.coalesce(pnum)
}

// Repack redistributes content so every part sits near the working size,
// within the given tolerance. A tolerance <= 0 uses
// [DefaultRepackTolerance]. Configure calls Repack to re-chunk after a size
// change; it is also useful after a long run of deletions has left many
// underfull parts.
func (b *Buffer) Repack(tolerance int) {
	if tolerance <= 0 {
		tolerance = DefaultRepackTolerance
	}
	before := len(b.parts)
	for pnum := 0; pnum < len(b.parts); pnum++ {
		gap := b.partFill - len(b.parts[pnum])
		switch {
		case gap > tolerance:
			// Pull from the following parts until this one is near the
			// working size.
			for gap > 0 && pnum+1 < len(b.parts) {
				move := min(len(b.parts[pnum+1]), gap)
				b.parts[pnum] += b.parts[pnum+1][:move]
				b.parts[pnum+1] = b.parts[pnum+1][move:]
				if len(b.parts[pnum+1]) == 0 {
					b.deletePart(pnum + 1)
				}
				gap = b.partFill - len(b.parts[pnum])
			}
		case gap < -tolerance || len(b.parts[pnum]) > b.partMax:
			// Push the excess right. Parts can exceed even the hard cap
			// here when Configure has just shrunk the part size.
			excess := b.parts[pnum][b.partFill:]
			b.parts[pnum] = b.parts[pnum][:b.partFill]
			if b.availIn(pnum+1, b.partMax) >= len(excess) {
				b.parts[pnum+1] = excess + b.parts[pnum+1]
			} else {
				for len(excess) > b.partMax {
					b.insertPart(pnum+1, excess[:b.partFill])
					excess = excess[b.partFill:]
					pnum++
				}
				b.insertPart(pnum+1, excess)
			}
		}
	}
	b.logger.Debug(
		"repacked buffer",
		"partsBefore", before,
		"partsAfter", len(b.parts),
		"packingFactor", b.PackingFactor(),
	)
}
