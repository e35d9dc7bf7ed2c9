// Package slibtools turns logic analyzer captures into decoded serial data.
//
// The core of the module is the decode-serial pipeline: parse a
// change-based CSV export, recognize UART frames on one channel and write
// them out as CSV rows. The cmd/decode-serial binary drives it from the
// command line; this package exposes the same pipeline for embedding.
//
// Example usage:
//
//	cfg := slibtools.DefaultConfig()
//	cfg.Channel = "UART_TX"
//	cfg.BaudRate = 115200
//	cfg.Input = "capture.csv"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := slibtools.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// The building blocks live in their own packages for selective import:
// pkg/trace (waveform model), pkg/uart (frame recognizer), pkg/saleae
// (capture parser).
package slibtools

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/barbiani/slib-tools/internal/app"
	"github.com/barbiani/slib-tools/internal/cliconfig"
	"github.com/barbiani/slib-tools/pkg/log"
	"github.com/barbiani/slib-tools/pkg/uart"
)

// Config holds the configuration for the decode pipeline.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// Frame is one recognized serial frame.
type Frame = uart.Frame

// Run executes the decode pipeline with the given configuration. It blocks
// until the decode completes or, in watch mode, until the context is
// cancelled.
func Run(ctx context.Context, cfg Config) error {
	return app.Run(ctx, cfg, log.NewZerologLogger(Logger()))
}

// Decode recognizes frames in the capture read from r and writes the
// report rows to w. The file path and watch settings of cfg are ignored.
func Decode(ctx context.Context, cfg Config, r io.Reader, w io.Writer) error {
	return app.Decode(ctx, cfg, log.NewZerologLogger(Logger()), r, w)
}

// DefaultConfig returns a Config with sensible default values.
// At minimum, set Channel and BaudRate before calling Run.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Logger returns the package-level zerolog logger used by the pipeline.
func Logger() zerolog.Logger {
	return cliconfig.Logger()
}
