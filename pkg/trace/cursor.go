package trace

import "errors"

var (
	// ErrOutOfRange reports that a cursor was advanced past the end of its
	// channel. It is the normal end-of-trace condition; callers detect it
	// with errors.Is and stop sampling.
	ErrOutOfRange = errors.New("trace: cursor advanced out of range")

	// ErrNotFinished reports a cursor constructed over a channel that has
	// not been sealed with Finish.
	ErrNotFinished = errors.New("trace: channel not finished")

	// ErrNoProgress reports a boundary seek that crossed no entry. Only
	// corrupt entries, such as a non-finite timestamp, can stall a seek;
	// unlike ErrOutOfRange this is a defect in the data, not the normal
	// end of it.
	ErrNoProgress = errors.New("trace: cursor made no progress")
)

// Cursor is a forward-only sampling pointer over a finished channel. The
// waveform is piecewise constant: the interval starting at entry i holds
// that entry's level until the next entry's timestamp. A cursor tracks a
// virtual position inside one interval and the level there; it only ever
// moves forward.
//
// The final entry of a finished channel acts as the end marker. A cursor
// can sample any position strictly before that entry's timestamp; an
// Advance that would reach or pass it makes the cursor terminal and
// returns ErrOutOfRange, as does every call after that.
type Cursor struct {
	entries      []Entry
	index        int
	position     float64
	nextBoundary float64
}

// NewCursor creates a cursor resting on the first entry of ch.
func NewCursor(ch *Channel) (*Cursor, error) {
	if len(ch.entries) == 0 {
		return nil, ErrEmptyChannel
	}
	if !ch.finished {
		return nil, ErrNotFinished
	}
	cur := &Cursor{
		entries:  ch.entries,
		position: ch.entries[0].Time,
	}
	cur.nextBoundary = cur.boundary()
	return cur, nil
}

// boundary returns the timestamp at which the current interval ends. The
// last entry has no interval after it, so there its own timestamp is the
// boundary.
func (c *Cursor) boundary() float64 {
	if c.index < len(c.entries)-1 {
		return c.entries[c.index+1].Time
	}
	return c.entries[c.index].Time
}

// Position returns the cursor's virtual timestamp.
func (c *Cursor) Position() float64 {
	return c.position
}

// Level returns the signal level at the current position. It must not be
// called once the cursor is terminal.
func (c *Cursor) Level() int {
	return c.entries[c.index].Level
}

// AtEnd reports whether the cursor has gone terminal.
func (c *Cursor) AtEnd() bool {
	return c.index >= len(c.entries)
}

// Advance moves the position forward by d, crossing as many entry
// boundaries as the move covers. Advancing by zero is a no-op. Reaching or
// passing the channel's final entry returns ErrOutOfRange and leaves the
// cursor terminal.
func (c *Cursor) Advance(d float64) error {
	if c.AtEnd() {
		return ErrOutOfRange
	}
	for c.position+d >= c.nextBoundary {
		c.index++
		if c.AtEnd() {
			return ErrOutOfRange
		}
		c.nextBoundary = c.boundary()
	}
	c.position += d
	return nil
}

// AdvanceToLevel moves the cursor to the next change event at which the
// waveform holds level. The search always starts at the upcoming boundary,
// so a cursor already inside an interval at the wanted level still moves
// to the following change. For the alternating two-level entries a channel
// stores, Level() == level holds on return; a seek that fails to cross any
// boundary returns ErrNoProgress rather than a stale level.
func (c *Cursor) AdvanceToLevel(level int) error {
	if c.AtEnd() {
		return ErrOutOfRange
	}
	start := c.index
	if err := c.Advance(c.nextBoundary - c.position); err != nil {
		return err
	}
	if c.index == start {
		return ErrNoProgress
	}
	if c.Level() != level {
		return c.Advance(c.nextBoundary - c.position)
	}
	return nil
}

// Clone returns an independent cursor at the same position. The copy
// shares the channel's immutable entries, so cloning is cheap; advancing
// either cursor leaves the other untouched. Decoders use clones to peek
// ahead without committing the real position.
func (c *Cursor) Clone() *Cursor {
	dup := *c
	return &dup
}
