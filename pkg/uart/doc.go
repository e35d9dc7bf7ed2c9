// Package uart recognizes asynchronous serial frames in a change-based
// waveform capture.
//
// The decoder consumes one trace.Channel and yields Frame values for the
// classic UART layout: an idle-high line, one start bit (low), a
// configurable number of data bits least significant first, and one stop
// bit (high). Sampling happens at bit centers, so moderate timing drift in
// the capture does not corrupt values. Start edges that do not survive
// half a bit period are treated as glitches and skipped.
//
// Frames are pulled one at a time:
//
//	dec, err := uart.NewDecoder(ch, 9600)
//	for {
//		frame, err := dec.Next()
//		if errors.Is(err, io.EOF) {
//			break
//		}
//		// use frame
//	}
//
// Next returns io.EOF once the capture is exhausted; by default frames with
// a failed stop bit are dropped, WithInvalidFrames keeps them.
package uart
