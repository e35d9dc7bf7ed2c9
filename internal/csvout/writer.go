// Package csvout renders recognized frames as the decoded CSV report.
package csvout

import (
	"fmt"
	"io"
	"strings"

	"github.com/barbiani/slib-tools/pkg/uart"
)

// Header is the column row every report starts with.
const Header = "timestamp(s),byte,isFrameValid,subascii"

// safeSet is the allowlist for the subascii column. It stays inside ASCII
// and avoids anything that could upset a CSV consumer, commas and quotes
// in particular.
const safeSet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789.+-!$:_ "

// Printable returns the character for v when it falls in the restricted
// safe set, and an empty string otherwise.
func Printable(v uint16) string {
	if strings.ContainsRune(safeSet, rune(v)) {
		return string(rune(v))
	}
	return ""
}

// Writer emits frame rows with timestamps at a fixed number of fractional
// digits, matching the precision of the capture they came from.
type Writer struct {
	w        io.Writer
	decimals int
}

// NewWriter creates a Writer printing timestamps with decimals fractional
// digits.
func NewWriter(w io.Writer, decimals int) *Writer {
	return &Writer{w: w, decimals: decimals}
}

// WriteHeader emits the column header row.
func (w *Writer) WriteHeader() error {
	_, err := fmt.Fprintln(w.w, Header)
	return err
}

// WriteFrame emits one frame as a row of start timestamp, decimal value,
// validity digit and printable rendering.
func (w *Writer) WriteFrame(f uart.Frame) error {
	valid := 0
	if f.Valid {
		valid = 1
	}
	_, err := fmt.Fprintf(w.w, "%.*f,%d,%d,%s\n", w.decimals, f.Start, f.Value, valid, Printable(f.Value))
	return err
}
