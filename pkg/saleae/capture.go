package saleae

import "github.com/barbiani/slib-tools/pkg/trace"

// Capture is one parsed export: a finished channel per signal column plus
// the timestamp precision observed in the file.
type Capture struct {
	channels []*trace.Channel
	decimals int
}

// Channels returns the capture's channels in column order.
func (c *Capture) Channels() []*trace.Channel {
	return c.channels
}

// Channel returns the channel recorded under the given column name.
func (c *Capture) Channel(name string) (*trace.Channel, bool) {
	for _, ch := range c.channels {
		if ch.Name() == name {
			return ch, true
		}
	}
	return nil, false
}

// Names returns the channel names in column order.
func (c *Capture) Names() []string {
	names := make([]string, len(c.channels))
	for i, ch := range c.channels {
		names[i] = ch.Name()
	}
	return names
}

// Decimals returns the largest number of significant fractional digits
// seen in the timestamp column. Writers use it to format output
// timestamps at the capture's own precision.
func (c *Capture) Decimals() int {
	return c.decimals
}
