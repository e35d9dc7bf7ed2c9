package trace

import (
	"errors"
	"math"
	"testing"
)

// buildChannel assembles a finished channel from alternating change events.
func buildChannel(t *testing.T, tail float64, events ...Entry) *Channel {
	t.Helper()
	ch := NewChannel("ch0")
	for _, e := range events {
		if err := ch.Add(e.Time, e.Level); err != nil {
			t.Fatalf("Add(%v, %d) failed: %v", e.Time, e.Level, err)
		}
	}
	if err := ch.Finish(tail); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	return ch
}

func TestNewCursorStartsAtFirstEntry(t *testing.T) {
	ch := buildChannel(t, 10.0, Entry{0.5, 1}, Entry{2.0, 0})

	cur, err := NewCursor(ch)
	if err != nil {
		t.Fatalf("NewCursor failed: %v", err)
	}
	if got, want := cur.Position(), 0.5; got != want {
		t.Fatalf("Position() = %v, want %v", got, want)
	}
	if got, want := cur.Level(), 1; got != want {
		t.Fatalf("Level() = %d, want %d", got, want)
	}
	if cur.AtEnd() {
		t.Fatal("AtEnd() = true on fresh cursor")
	}
}

func TestNewCursorErrors(t *testing.T) {
	t.Run("unfinished channel", func(t *testing.T) {
		ch := NewChannel("ch0")
		if err := ch.Add(0.0, 1); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if _, err := NewCursor(ch); !errors.Is(err, ErrNotFinished) {
			t.Fatalf("NewCursor error = %v, want ErrNotFinished", err)
		}
	})

	t.Run("empty channel", func(t *testing.T) {
		if _, err := NewCursor(NewChannel("ch0")); !errors.Is(err, ErrEmptyChannel) {
			t.Fatalf("NewCursor error = %v, want ErrEmptyChannel", err)
		}
	})
}

func TestCursorAdvance(t *testing.T) {
	// Intervals: [0,1) high, [1,4) low, [4,8) high, guard to 18.
	events := []Entry{{0.0, 1}, {1.0, 0}, {4.0, 1}, {8.0, 0}}

	tests := []struct {
		name         string
		advances     []float64
		wantPosition float64
		wantLevel    int
	}{
		{"within first interval", []float64{0.5}, 0.5, 1},
		{"zero is a no-op", []float64{0.5, 0}, 0.5, 1},
		{"cross one boundary", []float64{1.5}, 1.5, 0},
		{"land exactly on boundary", []float64{1.0}, 1.0, 0},
		{"cross several boundaries", []float64{6.0}, 6.0, 1},
		{"accumulate", []float64{0.5, 0.5, 1.0, 2.5}, 4.5, 1},
		{"into tail guard", []float64{9.0}, 9.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur, err := NewCursor(buildChannel(t, 10.0, events...))
			if err != nil {
				t.Fatalf("NewCursor failed: %v", err)
			}
			for _, d := range tt.advances {
				if err := cur.Advance(d); err != nil {
					t.Fatalf("Advance(%v) failed: %v", d, err)
				}
			}
			if got := cur.Position(); got != tt.wantPosition {
				t.Errorf("Position() = %v, want %v", got, tt.wantPosition)
			}
			if got := cur.Level(); got != tt.wantLevel {
				t.Errorf("Level() = %d, want %d", got, tt.wantLevel)
			}
		})
	}
}

func TestCursorAdvanceOutOfRange(t *testing.T) {
	// Last entry at 3.0 is the end marker: positions before it are
	// reachable, reaching it is out of range.
	ch := buildChannel(t, 0, Entry{0.0, 1}, Entry{1.0, 0}, Entry{3.0, 1})

	cur, err := NewCursor(ch)
	if err != nil {
		t.Fatalf("NewCursor failed: %v", err)
	}
	if err := cur.Advance(2.5); err != nil {
		t.Fatalf("Advance(2.5) failed: %v", err)
	}
	if err := cur.Advance(0.5); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Advance error = %v, want ErrOutOfRange", err)
	}
	if !cur.AtEnd() {
		t.Fatal("AtEnd() = false after out-of-range advance")
	}
	// The cursor stays terminal.
	if err := cur.Advance(0.1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Advance on terminal cursor = %v, want ErrOutOfRange", err)
	}
}

func TestCursorTailGuardExtendsFinalLevel(t *testing.T) {
	// Data ends at 2.0 with the line high; the guard keeps it readable for
	// another 10 units.
	ch := buildChannel(t, 10.0, Entry{0.0, 0}, Entry{2.0, 1})

	cur, err := NewCursor(ch)
	if err != nil {
		t.Fatalf("NewCursor failed: %v", err)
	}
	if err := cur.Advance(11.5); err != nil {
		t.Fatalf("Advance(11.5) failed: %v", err)
	}
	if got, want := cur.Level(), 1; got != want {
		t.Fatalf("Level() inside guard = %d, want %d", got, want)
	}
	if err := cur.Advance(1.0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Advance past guard = %v, want ErrOutOfRange", err)
	}
}

func TestCursorAdvanceToLevel(t *testing.T) {
	events := []Entry{{0.0, 1}, {2.0, 0}, {3.0, 1}, {5.0, 0}}

	t.Run("finds next change to level", func(t *testing.T) {
		cur, err := NewCursor(buildChannel(t, 10.0, events...))
		if err != nil {
			t.Fatalf("NewCursor failed: %v", err)
		}
		if err := cur.AdvanceToLevel(0); err != nil {
			t.Fatalf("AdvanceToLevel(0) failed: %v", err)
		}
		if got, want := cur.Position(), 2.0; got != want {
			t.Fatalf("Position() = %v, want %v", got, want)
		}
		if got, want := cur.Level(), 0; got != want {
			t.Fatalf("Level() = %d, want %d", got, want)
		}
	})

	t.Run("skips interval already at level", func(t *testing.T) {
		cur, err := NewCursor(buildChannel(t, 10.0, events...))
		if err != nil {
			t.Fatalf("NewCursor failed: %v", err)
		}
		if err := cur.AdvanceToLevel(0); err != nil {
			t.Fatalf("AdvanceToLevel(0) failed: %v", err)
		}
		// Already at level 0; the next change to 0 is at 5.0.
		if err := cur.AdvanceToLevel(0); err != nil {
			t.Fatalf("second AdvanceToLevel(0) failed: %v", err)
		}
		if got, want := cur.Position(), 5.0; got != want {
			t.Fatalf("Position() = %v, want %v", got, want)
		}
	})

	t.Run("no change left", func(t *testing.T) {
		cur, err := NewCursor(buildChannel(t, 10.0, events...))
		if err != nil {
			t.Fatalf("NewCursor failed: %v", err)
		}
		if err := cur.AdvanceToLevel(0); err != nil {
			t.Fatalf("AdvanceToLevel(0) failed: %v", err)
		}
		if err := cur.AdvanceToLevel(0); err != nil {
			t.Fatalf("second AdvanceToLevel(0) failed: %v", err)
		}
		// Only the guard remains past 5.0, and it stays low.
		if err := cur.AdvanceToLevel(1); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("AdvanceToLevel(1) error = %v, want ErrOutOfRange", err)
		}
	})
}

func TestCursorAdvanceToLevelNonFiniteTimestamp(t *testing.T) {
	// A NaN first timestamp defeats interval arithmetic: no advance can
	// ever cross a boundary. The seek must fail instead of returning with
	// the level unchanged.
	ch := buildChannel(t, 10.0, Entry{math.NaN(), 1})

	cur, err := NewCursor(ch)
	if err != nil {
		t.Fatalf("NewCursor failed: %v", err)
	}
	if err := cur.AdvanceToLevel(0); !errors.Is(err, ErrNoProgress) {
		t.Fatalf("AdvanceToLevel(0) error = %v, want ErrNoProgress", err)
	}
}

func TestCursorCloneIsIndependent(t *testing.T) {
	ch := buildChannel(t, 10.0, Entry{0.0, 1}, Entry{2.0, 0}, Entry{4.0, 1})

	cur, err := NewCursor(ch)
	if err != nil {
		t.Fatalf("NewCursor failed: %v", err)
	}
	if err := cur.Advance(1.0); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}

	peek := cur.Clone()
	if err := peek.Advance(2.0); err != nil {
		t.Fatalf("clone Advance failed: %v", err)
	}

	if got, want := peek.Position(), 3.0; got != want {
		t.Fatalf("clone Position() = %v, want %v", got, want)
	}
	if got, want := peek.Level(), 0; got != want {
		t.Fatalf("clone Level() = %d, want %d", got, want)
	}
	if got, want := cur.Position(), 1.0; got != want {
		t.Fatalf("original Position() = %v, want %v", got, want)
	}
	if got, want := cur.Level(), 1; got != want {
		t.Fatalf("original Level() = %d, want %d", got, want)
	}
}
