package trace

import (
	"errors"
	"fmt"
)

// DefaultTailLength is the span of the tail guard appended by Finish, in
// the capture's time unit (seconds for Saleae exports).
const DefaultTailLength = 10.0

var (
	// ErrOutOfOrder reports an Add whose timestamp does not advance past
	// the previous one. Timestamps must be strictly increasing even for
	// events that repeat the current level.
	ErrOutOfOrder = errors.New("trace: timestamp does not advance")

	// ErrEmptyChannel reports a Finish or cursor construction on a channel
	// that never received an entry.
	ErrEmptyChannel = errors.New("trace: channel has no entries")

	// ErrFinished reports an Add or a second Finish on a finished channel.
	ErrFinished = errors.New("trace: channel already finished")
)

// Entry is one change event. The waveform assumes Level at Time and holds
// it until the next entry's timestamp.
type Entry struct {
	// Time is the event timestamp in the capture's time unit.
	Time float64

	// Level is the signal level from the event onward, 0 or 1 for digital
	// captures.
	Level int
}

// Channel is the run-coalesced change history of a single signal. Entries
// are appended with Add, sealed with Finish and then sampled through
// cursors. A Channel is not safe for concurrent mutation; once finished it
// is immutable and freely shareable.
type Channel struct {
	name     string
	entries  []Entry
	finished bool
}

// NewChannel creates an empty channel for the named signal.
func NewChannel(name string) *Channel {
	return &Channel{name: name}
}

// Name returns the signal name the channel was created with.
func (c *Channel) Name() string {
	return c.name
}

// Len returns the number of stored entries, including the tail guard once
// the channel is finished.
func (c *Channel) Len() int {
	return len(c.entries)
}

// Finished reports whether Finish has sealed the channel.
func (c *Channel) Finished() bool {
	return c.finished
}

// Add appends a change event. Events repeating the current level are
// dropped so stored entries always alternate, but their timestamps still
// count: ts must be strictly greater than the previous event's timestamp
// whether or not the event is kept.
func (c *Channel) Add(ts float64, level int) error {
	if c.finished {
		return ErrFinished
	}
	if len(c.entries) == 0 {
		c.entries = append(c.entries, Entry{Time: ts, Level: level})
		return nil
	}
	last := c.entries[len(c.entries)-1]
	// NaN never compares greater, so it is rejected as out of order too.
	if !(ts > last.Time) {
		return fmt.Errorf("%w: %v is not after %v", ErrOutOfOrder, ts, last.Time)
	}
	if level != last.Level {
		c.entries = append(c.entries, Entry{Time: ts, Level: level})
	}
	return nil
}

// Finish seals the channel. When tailLength is positive the final level is
// replicated tailLength units past the last event as a tail guard, so
// cursors can sample a little beyond the captured data; a zero tailLength
// seals without the guard. Finishing an empty channel is ErrEmptyChannel,
// finishing twice is ErrFinished.
func (c *Channel) Finish(tailLength float64) error {
	if c.finished {
		return ErrFinished
	}
	if len(c.entries) == 0 {
		return ErrEmptyChannel
	}
	if tailLength > 0 {
		last := c.entries[len(c.entries)-1]
		c.entries = append(c.entries, Entry{Time: last.Time + tailLength, Level: last.Level})
	}
	c.finished = true
	return nil
}
