// Package app wires the capture parser, the frame decoder and the CSV
// writer into the pipeline the decode-serial command runs.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/barbiani/slib-tools/internal/cliconfig"
	"github.com/barbiani/slib-tools/internal/csvout"
	"github.com/barbiani/slib-tools/internal/watch"
	"github.com/barbiani/slib-tools/pkg/log"
	"github.com/barbiani/slib-tools/pkg/saleae"
	"github.com/barbiani/slib-tools/pkg/uart"
)

// Run executes the decode pipeline. With watch mode off it decodes once;
// with it on, the input file is re-decoded after every settled change
// until ctx is cancelled.
func Run(ctx context.Context, cfg cliconfig.Config, logger log.Logger) error {
	if !cfg.Watch {
		return Once(ctx, cfg, logger)
	}
	w := watch.New(cfg.Input, cfg.Debounce, logger)
	return w.Run(ctx, func() {
		if err := Once(ctx, cfg, logger); err != nil {
			logger.Error("decode failed", log.Err(err))
		}
	})
}

// Once decodes the configured input into the configured output. Empty
// paths mean stdin and stdout.
func Once(ctx context.Context, cfg cliconfig.Config, logger log.Logger) error {
	var in io.Reader = os.Stdin
	if cfg.Input != "" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	if cfg.Output == "" {
		return Decode(ctx, cfg, logger, in, os.Stdout)
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := Decode(ctx, cfg, logger, in, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Decode parses a capture from r, recognizes frames on the configured
// channel and writes the report rows to w.
func Decode(ctx context.Context, cfg cliconfig.Config, logger log.Logger, r io.Reader, w io.Writer) error {
	parser := saleae.NewParser()
	parser.TailLength = cfg.TailLength
	capture, err := parser.Parse(r)
	if err != nil {
		return err
	}

	channel, ok := capture.Channel(cfg.Channel)
	if !ok {
		return fmt.Errorf("failed to locate channel %s; available channels: %s",
			cfg.Channel, strings.Join(capture.Names(), ", "))
	}

	opts := []uart.Option{uart.WithDataBits(cfg.DataBits), uart.WithLogger(logger)}
	if cfg.AllFrames {
		opts = append(opts, uart.WithInvalidFrames())
	}
	decoder, err := uart.NewDecoder(channel, cfg.BaudRate, opts...)
	if err != nil {
		return err
	}

	buf := bufio.NewWriter(w)
	report := csvout.NewWriter(buf, capture.Decimals())
	if err := report.WriteHeader(); err != nil {
		return err
	}

	frames, invalid := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, err := decoder.Next()
		if errors.Is(err, uart.ErrNoMoreFrames) {
			break
		}
		if err != nil {
			return err
		}
		if err := report.WriteFrame(frame); err != nil {
			return err
		}
		frames++
		if !frame.Valid {
			invalid++
		}
	}
	if err := buf.Flush(); err != nil {
		return err
	}

	logger.Info("decode complete",
		log.String("channel", cfg.Channel),
		log.Int("baud", cfg.BaudRate),
		log.Int("frames", frames),
		log.Int("invalid", invalid))
	return nil
}
