package strbuf

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// applyToParts rewrites every part through f and re-chunks the result.
// A trailing incomplete UTF-8 sequence is held back and joined with the
// next part, so f never sees a torn rune. f may change the byte length.
func (b *Buffer) applyToParts(f func(string) string) {
	carry := ""
	out := b.emptyLike()
	for _, p := range b.parts {
		p = carry + p
		carry = ""
		if n := incompleteTail(p); n > 0 {
			carry = p[len(p)-n:]
			p = p[:len(p)-n]
		}
		out.Append(f(p))
	}
	if carry != "" {
		out.Append(f(carry))
	}
	b.parts = out.parts
}

// incompleteTail returns the length of a trailing incomplete UTF-8 sequence,
// or 0 if s ends on a rune boundary.
func incompleteTail(s string) int {
	for i := 1; i <= utf8.UTFMax && i <= len(s); i++ {
		c := s[len(s)-i]
		if c&0xC0 == 0x80 {
			continue // Continuation byte, keep stepping back.
		}
		if runeLen(c) > i {
			return i
		}
		return 0
	}
	return 0
}

// runeLen returns the encoded length implied by a UTF-8 leading byte.
func runeLen(c byte) int {
	switch {
	case c < 0x80:
		return 1
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	default:
		return 1 // Invalid leading byte.
	}
}

// eachRune walks the content rune by rune, stitching runes that straddle
// part boundaries. It stops early when walk returns false.
func (b *Buffer) eachRune(walk func(rune) bool) {
	carry := ""
	for _, p := range b.parts {
		p = carry + p
		carry = ""
		if n := incompleteTail(p); n > 0 {
			carry = p[len(p)-n:]
			p = p[:len(p)-n]
		}
		for _, r := range p {
			if !walk(r) {
				return
			}
		}
	}
	for _, r := range carry {
		if !walk(r) {
			return
		}
	}
}

// Upper maps the content to upper case.
func (b *Buffer) Upper() {
	b.applyToParts(strings.ToUpper)
}

// Lower maps the content to lower case.
func (b *Buffer) Lower() {
	b.applyToParts(strings.ToLower)
}

// Fold applies full Unicode case folding, the canonical form for caseless
// comparison.
func (b *Buffer) Fold() {
	folder := cases.Fold()
	b.applyToParts(folder.String)
}

// SwapCase inverts the case of every cased rune.
func (b *Buffer) SwapCase() {
	b.applyToParts(func(p string) string {
		return strings.Map(func(r rune) rune {
			switch {
			case unicode.IsUpper(r):
				return unicode.ToLower(r)
			case unicode.IsLower(r):
				return unicode.ToUpper(r)
			}
			return r
		}, p)
	})
}

// Title title-cases the first letter of every word and lower-cases the
// rest. Word state carries across part boundaries, so a word straddling
// parts gets a single capital.
func (b *Buffer) Title() {
	inWord := false
	b.applyToParts(func(p string) string {
		return strings.Map(func(r rune) rune {
			if !unicode.IsLetter(r) {
				inWord = false
				return r
			}
			if inWord {
				return unicode.ToLower(r)
			}
			inWord = true
			return unicode.ToTitle(r)
		}, p)
	})
}

// Capitalize lower-cases the content and title-cases the very first rune.
func (b *Buffer) Capitalize() {
	b.Lower()
	r, size := b.RuneAt(0)
	if size == 0 {
		return
	}
	up := unicode.ToTitle(r)
	if up == r {
		return
	}
	if err := b.Delete(0, size); err != nil {
		panic(fmt.Errorf("internal error: capitalize: %w", err))
	}
	if err := b.Insert(0, string(up)); err != nil {
		panic(fmt.Errorf("internal error: capitalize: %w", err))
	}
}

// Translate rewrites every rune found in table with its replacement. An
// empty replacement drops the rune.
func (b *Buffer) Translate(table map[rune]string) {
	b.applyToParts(func(p string) string {
		var sb strings.Builder
		sb.Grow(len(p))
		for _, r := range p {
			if repl, ok := table[r]; ok {
				sb.WriteString(repl)
			} else {
				sb.WriteRune(r)
			}
		}
		return sb.String()
	})
}

// isa reports whether every rune satisfies pred. Empty content reports
// false.
func (b *Buffer) isa(pred func(rune) bool) bool {
	if b.IsEmpty() {
		return false
	}
	ok := true
	b.eachRune(func(r rune) bool {
		if !pred(r) {
			ok = false
			return false
		}
		return true
	})
	return ok
}

// IsAlpha reports whether the content is non-empty and all letters.
func (b *Buffer) IsAlpha() bool { return b.isa(unicode.IsLetter) }

// IsAlnum reports whether the content is non-empty and all letters or
// numbers.
func (b *Buffer) IsAlnum() bool {
	return b.isa(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsNumber(r) })
}

// IsDigit reports whether the content is non-empty and all digits.
func (b *Buffer) IsDigit() bool { return b.isa(unicode.IsDigit) }

// IsNumeric reports whether the content is non-empty and all numeric runes.
func (b *Buffer) IsNumeric() bool { return b.isa(unicode.IsNumber) }

// IsSpace reports whether the content is non-empty and all white space.
func (b *Buffer) IsSpace() bool { return b.isa(unicode.IsSpace) }

// IsPrintable reports whether the content is non-empty and all printable.
func (b *Buffer) IsPrintable() bool { return b.isa(unicode.IsPrint) }

// IsASCII reports whether every byte is ASCII. Empty content is ASCII.
func (b *Buffer) IsASCII() bool {
	for _, p := range b.parts {
		for i := 0; i < len(p); i++ {
			if p[i] >= utf8.RuneSelf {
				return false
			}
		}
	}
	return true
}

// IsUpper reports whether at least one cased rune exists and all cased
// runes are upper case.
func (b *Buffer) IsUpper() bool { return b.isCased(unicode.IsUpper) }

// IsLower reports whether at least one cased rune exists and all cased
// runes are lower case.
func (b *Buffer) IsLower() bool { return b.isCased(unicode.IsLower) }

func (b *Buffer) isCased(pred func(rune) bool) bool {
	sawCased := false
	ok := true
	b.eachRune(func(r rune) bool {
		if !unicode.IsUpper(r) && !unicode.IsLower(r) && !unicode.IsTitle(r) {
			return true
		}
		sawCased = true
		if !pred(r) {
			ok = false
			return false
		}
		return true
	})
	return ok && sawCased
}

// IsTitle reports whether the content is title-cased: every word starts
// with one upper or title case rune followed only by lower case ones.
func (b *Buffer) IsTitle() bool {
	sawCased := false
	ok := true
	prevCased := false
	b.eachRune(func(r rune) bool {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			sawCased = true
			if prevCased {
				ok = false
				return false
			}
			prevCased = true
		case unicode.IsLower(r):
			sawCased = true
			if !prevCased {
				ok = false
				return false
			}
		default:
			prevCased = false
		}
		return true
	})
	return ok && sawCased
}

// MinRune returns the smallest rune in the content. ok is false when the
// content is empty.
func (b *Buffer) MinRune() (rune, bool) {
	m := rune(-1)
	b.eachRune(func(r rune) bool {
		if m < 0 || r < m {
			m = r
		}
		return true
	})
	if m < 0 {
		return utf8.RuneError, false
	}
	return m, true
}

// MaxRune returns the largest rune in the content. ok is false when the
// content is empty.
func (b *Buffer) MaxRune() (rune, bool) {
	m := rune(-1)
	b.eachRune(func(r rune) bool {
		if r > m {
			m = r
		}
		return true
	})
	if m < 0 {
		return utf8.RuneError, false
	}
	return m, true
}
