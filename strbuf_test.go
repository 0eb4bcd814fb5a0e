package strbuf

// White box testing of buffer construction and the read surface.

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/holmberd/go-strbuf/internal/testutils"
)

// newTestBuffer is a helper for creating an empty buffer for testing.
func newTestBuffer(t *testing.T, partMax int, fillFactor float64) *Buffer {
	t.Helper()
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Discard logs during testing.
	b, err := New(discardLogger, Config{PartMax: partMax, FillFactor: fillFactor})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// newTestBufferFromString is a helper for creating a buffer holding s,
// chunked under a small part size so content spans multiple parts.
func newTestBufferFromString(t *testing.T, s string, partMax int) *Buffer {
	t.Helper()
	b := newTestBuffer(t, partMax, 0.75)
	b.Append(s)
	return b
}

func checkInvariants(t *testing.T, b *Buffer) {
	t.Helper()
	if err := b.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestFromString(t *testing.T) {
	b := FromString(testutils.Sample)
	if got := b.String(); got != testutils.Sample {
		t.Errorf("content = %q, want %q", got, testutils.Sample)
	}
	if b.Len() != len(testutils.Sample) {
		t.Errorf("Len() = %d, want %d", b.Len(), len(testutils.Sample))
	}
	checkInvariants(t, b)
}

func TestChunkedConstruction(t *testing.T) {
	s := strings.Repeat("ab", 1000)
	b := newTestBufferFromString(t, s, 100)
	if len(b.parts) < 2 {
		t.Fatalf("parts = %d, want multiple parts for %d bytes", len(b.parts), len(s))
	}
	for pnum, p := range b.parts {
		if len(p) > 100 {
			t.Errorf("part %d length %d exceeds max 100", pnum, len(p))
		}
	}
	if got := b.String(); got != s {
		t.Error("concatenated parts do not reproduce the content")
	}
	checkInvariants(t, b)
}

func TestEmptyBuffer(t *testing.T) {
	b := newTestBuffer(t, 100, 0.75)
	if !b.IsEmpty() || b.Len() != 0 || b.String() != "" {
		t.Error("new buffer is not empty")
	}
	if len(b.parts) != 1 {
		t.Errorf("parts = %d, want the single empty part", len(b.parts))
	}

	b.Append("hello")
	b.Clear()
	if !b.IsEmpty() || len(b.parts) != 1 {
		t.Error("Clear did not restore the single empty part")
	}
	checkInvariants(t, b)
}

func TestCloneIndependence(t *testing.T) {
	b := newTestBufferFromString(t, testutils.Sample, 100)
	clone := b.Clone()
	clone.Upper()
	if got := b.String(); got != testutils.Sample {
		t.Error("mutating a clone changed the original")
	}
	if clone.String() != strings.ToUpper(testutils.Sample) {
		t.Error("clone did not apply its own mutation")
	}
}

func TestAt(t *testing.T) {
	b := newTestBufferFromString(t, "hello world", 100)

	tests := []struct {
		offset int
		want   byte
	}{
		{0, 'h'},
		{4, 'o'},
		{-1, 'd'},
		{-11, 'h'},
	}
	for _, tt := range tests {
		got, err := b.At(tt.offset)
		if err != nil || got != tt.want {
			t.Errorf("At(%d) = (%q, %v), want (%q, nil)", tt.offset, got, err, tt.want)
		}
	}

	if _, err := b.At(11); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("At(11) error = %v, want ErrOffsetOutOfRange", err)
	}
}

func TestRuneAt(t *testing.T) {
	t.Run("ASCII", func(t *testing.T) {
		b := newTestBufferFromString(t, "abc", 100)
		if r, size := b.RuneAt(1); r != 'b' || size != 1 {
			t.Errorf("RuneAt(1) = (%q, %d), want ('b', 1)", r, size)
		}
	})

	t.Run("Rune straddling a part boundary", func(t *testing.T) {
		b := newTestBuffer(t, 100, 0.75)
		b.parts = []string{"a\xc3", "\xa9b"} // "aéb" split inside é.
		if r, size := b.RuneAt(1); r != 'é' || size != 2 {
			t.Errorf("RuneAt(1) = (%q, %d), want ('é', 2)", r, size)
		}
		if got := b.RuneCount(); got != 3 {
			t.Errorf("RuneCount() = %d, want 3", got)
		}
	})

	t.Run("Out of range", func(t *testing.T) {
		b := newTestBufferFromString(t, "abc", 100)
		if _, size := b.RuneAt(3); size != 0 {
			t.Errorf("RuneAt(3) size = %d, want 0", size)
		}
	})
}

func TestSubstring(t *testing.T) {
	s := strings.Repeat("0123456789", 50)
	b := newTestBufferFromString(t, s, 100)

	tests := []struct {
		start, end int
	}{
		{0, 0},
		{0, 10},
		{45, 230}, // Spans part boundaries.
		{-20, -1},
		{0, 500},
	}
	for _, tt := range tests {
		got, err := b.Substring(tt.start, tt.end)
		if err != nil {
			t.Fatalf("Substring(%d, %d): %v", tt.start, tt.end, err)
		}
		lo, hi := tt.start, tt.end
		if lo < 0 {
			lo += len(s)
		}
		if hi < 0 {
			hi += len(s)
		}
		if want := s[lo:hi]; got != want {
			t.Errorf("Substring(%d, %d) = %q, want %q", tt.start, tt.end, got, want)
		}
	}

	if _, err := b.Substring(0, 501); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("Substring(0, 501) error = %v, want ErrOffsetOutOfRange", err)
	}
	if _, err := b.Substring(10, 5); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("Substring(10, 5) error = %v, want ErrRangeInvalid", err)
	}
}

func TestSlice(t *testing.T) {
	s := strings.Repeat("0123456789", 50)
	b := newTestBufferFromString(t, s, 100)
	sl, err := b.Slice(45, 230)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if got := sl.String(); got != s[45:230] {
		t.Errorf("Slice(45, 230) = %q, want %q", got, s[45:230])
	}
	checkInvariants(t, sl)

	sl.Upper()
	if b.String() != s {
		t.Error("mutating a slice changed the original")
	}
}

func TestWriteTo(t *testing.T) {
	b := newTestBufferFromString(t, testutils.Sample, 100)
	var out bytes.Buffer
	n, err := b.WriteTo(&out)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(len(testutils.Sample)) || out.String() != testutils.Sample {
		t.Errorf("WriteTo wrote %d bytes %q, want %d bytes of the content", n, out.String(), len(testutils.Sample))
	}
}

func TestConfigure(t *testing.T) {
	b := newTestBufferFromString(t, strings.Repeat("xy", 600), 2048)
	want := b.String()
	if err := b.Configure(Config{PartMax: 100, FillFactor: 0.8}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if got := b.String(); got != want {
		t.Error("content changed during Configure")
	}
	checkInvariants(t, b)

	if err := b.Configure(Config{PartMax: 10, FillFactor: 0.8}); err == nil {
		t.Error("expected an error for an invalid config, but got nil")
	}
}

func TestCheck(t *testing.T) {
	b := newTestBuffer(t, 100, 0.75)
	b.parts = []string{strings.Repeat("x", 101), ""}
	err := b.Check()
	if err == nil {
		t.Fatal("expected invariant violations, but got nil")
	}
	if !strings.Contains(err.Error(), "exceeds max") {
		t.Errorf("missing oversize violation: %v", err)
	}
	if !strings.Contains(err.Error(), "empty part") {
		t.Errorf("missing empty part violation: %v", err)
	}
}

func TestPackingFactor(t *testing.T) {
	b := newTestBuffer(t, 100, 0.75)
	if got := b.PackingFactor(); got != 0.0 {
		t.Errorf("PackingFactor() = %f for empty buffer, want 0", got)
	}
	b.parts = []string{strings.Repeat("x", 50), strings.Repeat("y", 50)}
	if got := b.PackingFactor(); got != 0.5 {
		t.Errorf("PackingFactor() = %f, want 0.5", got)
	}
}
