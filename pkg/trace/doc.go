// Package trace models change-based waveform captures.
//
// A logic analyzer exporting "changed values" produces, per signal, an
// ordered list of (timestamp, level) events: the signal assumes a level at
// the event's timestamp and holds it until the next event. Channel stores
// one such signal as a validated, run-coalesced sequence; Cursor is a
// forward-only virtual sampling pointer over a finished Channel.
//
// # Lifecycle
//
// Build a channel, finish it, then sample it:
//
//	ch := trace.NewChannel("UART_TX")
//	ch.Add(0.0, 1)
//	ch.Add(0.5, 0)
//	ch.Finish(trace.DefaultTailLength)
//
//	cur, err := trace.NewCursor(ch)
//	// cur.Advance / cur.AdvanceToLevel / cur.Level ...
//
// Finish appends a tail guard that replicates the final level into the
// future, so sampling near the end of real data does not run out of range
// mid-read. Once a cursor does advance past the guard it reports
// ErrOutOfRange; that is the expected end-of-trace signal, detected with
// errors.Is, not a failure.
//
// Channels are immutable after Finish, and cursors never write to them, so
// any number of cursors (including clones taken for lookahead) can share
// one channel.
package trace
