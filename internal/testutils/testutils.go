// Package testutils provides helpers shared by the strbuf tests.
package testutils

import (
	"math/rand"
	"strings"
)

// Sample is a small deterministic corpus of space-separated words.
const Sample = "Adam Beth Cris Dave ever fond grow high isle jump " +
	"knot lamp melt nope Owen Paul quit rope sees test " +
	"Urdo vent wrap Xeno yurt zoom "

var words = strings.Fields(Sample)

// Text returns n bytes of pseudo-random text drawn from the Sample words.
func Text(r *rand.Rand, n int) string {
	var sb strings.Builder
	sb.Grow(n + 8)
	for sb.Len() < n {
		sb.WriteString(words[r.Intn(len(words))])
		sb.WriteByte(' ')
	}
	return sb.String()[:n]
}
