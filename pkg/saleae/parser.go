package saleae

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/barbiani/slib-tools/pkg/trace"
)

// TimeColumn is the required header of the first CSV column.
const TimeColumn = "Time[s]"

// ErrEmptyInput reports an input with no header row.
var ErrEmptyInput = errors.New("saleae: input has no header row")

// Parser reads change-based CSV exports. The zero value is not useful;
// NewParser fills in the defaults.
type Parser struct {
	// TailLength is the guard region Finish appends to every channel, in
	// seconds.
	TailLength float64
}

// NewParser returns a Parser with the default tail guard.
func NewParser() *Parser {
	return &Parser{TailLength: trace.DefaultTailLength}
}

// Parse reads a capture from r with default settings.
func Parse(r io.Reader) (*Capture, error) {
	return NewParser().Parse(r)
}

// Parse reads one CSV export: a Time[s] header naming the channels, then
// one row per change event. Blank lines are skipped; every data row must
// carry a cell for each channel. The returned capture's channels are
// finished and ready for cursors.
func (p *Parser) Parse(r io.Reader) (*Capture, error) {
	scanner := bufio.NewScanner(r)
	capture := &Capture{}
	line := 0
	for scanner.Scan() {
		line++
		row := strings.TrimSpace(scanner.Text())
		if row == "" {
			continue
		}
		cells := strings.Split(row, ",")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}

		if capture.channels == nil {
			if cells[0] != TimeColumn {
				return nil, fmt.Errorf("saleae: line %d: first column is %q, want %q", line, cells[0], TimeColumn)
			}
			if len(cells) < 2 {
				return nil, fmt.Errorf("saleae: line %d: header names no channels", line)
			}
			seen := make(map[string]bool, len(cells)-1)
			for _, name := range cells[1:] {
				if seen[name] {
					return nil, fmt.Errorf("saleae: line %d: duplicate channel %q", line, name)
				}
				seen[name] = true
				capture.channels = append(capture.channels, trace.NewChannel(name))
			}
			continue
		}

		if len(cells) != len(capture.channels)+1 {
			return nil, fmt.Errorf("saleae: line %d: %d columns, want %d", line, len(cells), len(capture.channels)+1)
		}
		cell, digits := trimTimestamp(cells[0])
		ts, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("saleae: line %d: bad timestamp %q", line, cells[0])
		}
		// ParseFloat accepts spellings like "nan" and "inf", which no
		// capture timestamp can be.
		if math.IsNaN(ts) || math.IsInf(ts, 0) {
			return nil, fmt.Errorf("saleae: line %d: timestamp %q is not finite", line, cells[0])
		}
		if digits > capture.decimals {
			capture.decimals = digits
		}
		for i, ch := range capture.channels {
			level, err := strconv.Atoi(cells[i+1])
			if err != nil {
				return nil, fmt.Errorf("saleae: line %d: bad level %q in column %s", line, cells[i+1], ch.Name())
			}
			if err := ch.Add(ts, level); err != nil {
				return nil, fmt.Errorf("saleae: line %d: column %s: %w", line, ch.Name(), err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("saleae: read input: %w", err)
	}
	if capture.channels == nil {
		return nil, ErrEmptyInput
	}
	for _, ch := range capture.channels {
		if err := ch.Finish(p.TailLength); err != nil {
			return nil, fmt.Errorf("saleae: column %s: %w", ch.Name(), err)
		}
	}
	return capture, nil
}

// trimTimestamp strips the trailing-zero padding from a timestamp cell and
// reports how many significant fractional digits remain. Cells without a
// decimal point pass through unchanged, since their trailing zeros are
// significant.
func trimTimestamp(cell string) (string, int) {
	dot := strings.IndexByte(cell, '.')
	if dot < 0 {
		return cell, 0
	}
	cell = strings.TrimRight(cell, "0")
	return cell, len(cell) - dot - 1
}
