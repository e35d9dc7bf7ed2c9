package uart

import (
	"errors"
	"fmt"
	"io"

	"github.com/barbiani/slib-tools/pkg/log"
	"github.com/barbiani/slib-tools/pkg/trace"
)

const (
	// DefaultDataBits is the number of data bits per frame unless
	// WithDataBits overrides it.
	DefaultDataBits = 8

	// MaxDataBits bounds WithDataBits so a frame's value fits in uint16.
	MaxDataBits = 16
)

// ErrNoMoreFrames is returned by Next when the capture is exhausted. It is
// io.EOF, the normal termination of the frame sequence.
var ErrNoMoreFrames = io.EOF

// Frame is one recognized serial frame.
type Frame struct {
	// Start is the capture timestamp of the start bit's falling edge.
	Start float64

	// Value holds the data bits, assembled least significant bit first.
	Value uint16

	// Valid reports whether the stop bit sampled high. An invalid frame
	// usually means noise, a baud rate mismatch or a truncated capture.
	Valid bool
}

// Decoder recognizes frames on a single channel. It keeps a cursor into
// the capture between calls, so Next returns consecutive frames until the
// trace runs out. A Decoder is not safe for concurrent use.
type Decoder struct {
	cursor      *trace.Cursor
	bitPeriod   float64
	dataBits    int
	keepInvalid bool
	logger      log.Logger
	done        bool
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithDataBits sets the number of data bits per frame, between 1 and
// MaxDataBits.
func WithDataBits(n int) Option {
	return func(d *Decoder) { d.dataBits = n }
}

// WithInvalidFrames makes Next return frames whose stop bit failed instead
// of silently dropping them.
func WithInvalidFrames() Option {
	return func(d *Decoder) { d.keepInvalid = true }
}

// WithLogger sets the logger used for per-frame debug output. The default
// discards everything.
func WithLogger(logger log.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDecoder creates a Decoder reading ch at baudRate. The channel must be
// finished.
func NewDecoder(ch *trace.Channel, baudRate int, opts ...Option) (*Decoder, error) {
	if baudRate <= 0 {
		return nil, fmt.Errorf("uart: baud rate must be positive, got %d", baudRate)
	}
	d := &Decoder{
		bitPeriod: 1.0 / float64(baudRate),
		dataBits:  DefaultDataBits,
		logger:    log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.dataBits < 1 || d.dataBits > MaxDataBits {
		return nil, fmt.Errorf("uart: data bits must be between 1 and %d, got %d", MaxDataBits, d.dataBits)
	}
	cursor, err := trace.NewCursor(ch)
	if err != nil {
		return nil, fmt.Errorf("uart: %w", err)
	}
	d.cursor = cursor
	return d, nil
}

// Next returns the next recognized frame. Exhausting the capture,
// including mid-frame, returns ErrNoMoreFrames (io.EOF); after that the
// decoder stays exhausted.
func (d *Decoder) Next() (Frame, error) {
	if d.done {
		return Frame{}, ErrNoMoreFrames
	}
	for {
		// Hunt for the falling edge of a start bit.
		if err := d.cursor.AdvanceToLevel(0); err != nil {
			return d.exhaust(err)
		}
		start := d.cursor.Position()

		// Peek half a bit period ahead on a clone. A line already back
		// high there is a glitch, not a start bit; nudge the real cursor
		// past it so the same edge is not found again.
		peek := d.cursor.Clone()
		if err := peek.Advance(d.bitPeriod / 2); err != nil {
			return d.exhaust(err)
		}
		if peek.Level() != 0 {
			d.logger.Debug("skipping start edge shorter than half a bit",
				log.Float64("ts", start))
			if err := d.cursor.Advance(d.bitPeriod / 2); err != nil {
				return d.exhaust(err)
			}
			continue
		}

		// Confirmed start bit: move to the center of the first data bit
		// and sample each bit at its center, least significant first.
		if err := d.cursor.Advance(d.bitPeriod * 1.5); err != nil {
			return d.exhaust(err)
		}
		value := 0
		for bit := 0; bit < d.dataBits; bit++ {
			value += d.cursor.Level() << bit
			if err := d.cursor.Advance(d.bitPeriod); err != nil {
				return d.exhaust(err)
			}
		}

		// The cursor now sits at the stop bit's center; the frame is valid
		// when the line idles high there. Step to the frame's end either way.
		valid := d.cursor.Level() == 1
		if err := d.cursor.Advance(d.bitPeriod / 2); err != nil {
			return d.exhaust(err)
		}

		if !valid && !d.keepInvalid {
			d.logger.Debug("dropping frame with failed stop bit",
				log.Float64("ts", start), log.Int("value", value))
			continue
		}
		return Frame{Start: start, Value: uint16(value), Valid: valid}, nil
	}
}

// ReadAll drains the decoder and returns every remaining frame.
func (d *Decoder) ReadAll() ([]Frame, error) {
	var frames []Frame
	for {
		frame, err := d.Next()
		if errors.Is(err, ErrNoMoreFrames) {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, frame)
	}
}

// exhaust translates running out of trace into the end of the sequence.
// Any other cursor failure is passed through.
func (d *Decoder) exhaust(err error) (Frame, error) {
	if errors.Is(err, trace.ErrOutOfRange) {
		d.done = true
		return Frame{}, ErrNoMoreFrames
	}
	return Frame{}, err
}
