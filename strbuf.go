// Package strbuf implements a mutable string buffer that stays fast for
// edits anywhere in the string, even when the string grows large.
//
// Content is kept as a list of bounded-size string parts. A point edit
// rewrites at most a few parts, so inserting or deleting in the middle of a
// big string does not copy the whole string. The read surface mirrors the
// familiar string operations (substring, search, case mapping, predicates)
// and works across part boundaries.
package strbuf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

var (
	ErrOffsetOutOfRange = errors.New("offset is out of range")
	ErrRangeInvalid     = errors.New("range start is past range end")
	ErrNotFound         = errors.New("substring not found")
)

// Buffer represents a mutable string stored as a list of bounded-size parts.
//
// Invariants: there is always at least one part; every part is at most
// PartMax bytes; only a sole remaining part may be empty. Offsets are byte
// offsets; negative offsets count from the end.
//
// Not safe for concurrent use.
type Buffer struct {
	logger   *slog.Logger
	config   Config
	partMax  int // Hard cap on a part's length.
	partFill int // Working target length for a part.

	parts []string
}

// New creates an empty Buffer. A nil logger disables logging.
func New(logger *slog.Logger, config Config) (*Buffer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Buffer{
		logger:   logger,
		config:   config,
		partMax:  config.PartMax,
		partFill: config.partFill(),
		parts:    []string{""},
	}, nil
}

// FromString creates a Buffer with the default configuration holding s.
func FromString(s string) *Buffer {
	b, err := New(nil, DefaultConfig())
	if err != nil {
		panic(fmt.Errorf("internal error: default config invalid: %w", err))
	}
	b.Append(s)
	return b
}

// FromStringConfig creates a Buffer holding s with the given configuration.
func FromStringConfig(s string, logger *slog.Logger, config Config) (*Buffer, error) {
	b, err := New(logger, config)
	if err != nil {
		return nil, err
	}
	b.Append(s)
	return b, nil
}

// emptyLike returns a new empty buffer sharing b's configuration.
func (b *Buffer) emptyLike() *Buffer {
	return &Buffer{
		logger:   b.logger,
		config:   b.config,
		partMax:  b.partMax,
		partFill: b.partFill,
		parts:    []string{""},
	}
}

// Len returns the length of the content in bytes.
func (b *Buffer) Len() int {
	n := 0
	for _, p := range b.parts {
		n += len(p)
	}
	return n
}

// IsEmpty reports whether the buffer holds no content.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// RuneCount returns the number of runes in the content. A rune whose bytes
// straddle a part boundary is counted once.
func (b *Buffer) RuneCount() int {
	n := 0
	for _, p := range b.parts {
		for i := 0; i < len(p); i++ {
			if p[i]&0xC0 != 0x80 {
				n++
			}
		}
	}
	return n
}

// String materializes the content as a single string.
func (b *Buffer) String() string {
	if len(b.parts) == 1 {
		return b.parts[0]
	}
	var sb strings.Builder
	sb.Grow(b.Len())
	for _, p := range b.parts {
		sb.WriteString(p)
	}
	return sb.String()
}

// Clone returns an independent copy of the buffer with the same part split.
// Parts are immutable strings, so the copy is cheap.
func (b *Buffer) Clone() *Buffer {
	clone := *b
	clone.parts = make([]string, len(b.parts))
	copy(clone.parts, b.parts)
	return &clone
}

// Clear removes all content, leaving the single empty part.
func (b *Buffer) Clear() {
	b.parts = []string{""}
}

// At returns the byte at offset i. Negative offsets count from the end.
func (b *Buffer) At(i int) (byte, error) {
	pnum, local, err := b.locateRead(i)
	if err != nil {
		return 0, err
	}
	return b.parts[pnum][local], nil
}

// RuneAt decodes the rune starting at byte offset i, stitching bytes that
// straddle a part boundary. It returns the rune and its width in bytes, or
// (utf8.RuneError, 0) if the offset is out of range.
func (b *Buffer) RuneAt(i int) (rune, int) {
	pnum, local, err := b.locateRead(i)
	if err != nil {
		return utf8.RuneError, 0
	}
	p := b.parts[pnum]
	if c := p[local]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	var buf [utf8.UTFMax]byte
	n := copy(buf[:], p[local:])
	for next := pnum + 1; n < len(buf) && next < len(b.parts); next++ {
		n += copy(buf[n:], b.parts[next])
	}
	return utf8.DecodeRune(buf[:n])
}

// Substring returns the content of [start, end) as a string.
func (b *Buffer) Substring(start, end int) (string, error) {
	p0, o0, p1, o1, err := b.resolveRange(start, end)
	if err != nil {
		return "", err
	}
	if p0 == p1 {
		return b.parts[p0][o0:o1], nil
	}
	var sb strings.Builder
	sb.WriteString(b.parts[p0][o0:])
	for pnum := p0 + 1; pnum < p1; pnum++ {
		sb.WriteString(b.parts[pnum])
	}
	sb.WriteString(b.parts[p1][:o1])
	return sb.String(), nil
}

// Slice returns a new buffer holding a copy of [start, end).
func (b *Buffer) Slice(start, end int) (*Buffer, error) {
	s, err := b.Substring(start, end)
	if err != nil {
		return nil, err
	}
	out := b.emptyLike()
	out.Append(s)
	return out, nil
}

// WriteTo writes the content to w. It implements [io.WriterTo].
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, p := range b.parts {
		n, err := io.WriteString(w, p)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Configure applies a new part size configuration and repacks the content
// to the new working size.
func (b *Buffer) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	b.config = config
	b.partMax = config.PartMax
	b.partFill = config.partFill()
	b.Repack(DefaultRepackTolerance)
	return nil
}

// Check verifies the buffer's structural invariants.
func (b *Buffer) Check() error {
	var errs []error
	if len(b.parts) == 0 {
		errs = append(errs, errors.New("invariant violation: no parts"))
	}
	for pnum, p := range b.parts {
		if len(p) > b.partMax {
			errs = append(errs, fmt.Errorf(
				"invariant violation: part %d length %d exceeds max %d", pnum, len(p), b.partMax))
		}
		if len(p) == 0 && len(b.parts) > 1 {
			errs = append(errs, fmt.Errorf(
				"invariant violation: empty part %d in a %d-part buffer", pnum, len(b.parts)))
		}
	}
	return errors.Join(errs...)
}

// PackingFactor reports how full the parts currently are, as the ratio of
// content length to total part capacity. An empty buffer reports 0.
func (b *Buffer) PackingFactor() float64 {
	total := b.Len()
	if total == 0 {
		return 0.0
	}
	return float64(total) / float64(b.partMax*len(b.parts))
}
