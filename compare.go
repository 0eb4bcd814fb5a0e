package strbuf

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Compare lexicographically compares the content with other's, returning
// -1, 0 or +1 like [strings.Compare].
func (b *Buffer) Compare(other *Buffer) int {
	return strings.Compare(b.String(), other.String())
}

// CompareString compares the content against a plain string.
func (b *Buffer) CompareString(s string) int {
	return strings.Compare(b.String(), s)
}

// Equal reports whether the content equals other's, regardless of how
// either buffer is chunked.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.Len() != other.Len() {
		return false
	}
	return b.Compare(other) == 0
}

// EqualString reports whether the content equals s.
func (b *Buffer) EqualString(s string) bool {
	if b.Len() != len(s) {
		return false
	}
	for _, p := range b.parts {
		if p != s[:len(p)] {
			return false
		}
		s = s[len(p):]
	}
	return true
}

// Hash returns a 64-bit hash of the content. Buffers with equal content
// hash the same regardless of how they are chunked.
func (b *Buffer) Hash() uint64 {
	d := xxhash.New()
	for _, p := range b.parts {
		d.WriteString(p)
	}
	return d.Sum64()
}
