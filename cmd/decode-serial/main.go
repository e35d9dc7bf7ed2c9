package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/barbiani/slib-tools/internal/app"
	"github.com/barbiani/slib-tools/internal/cliconfig"
	logAdapter "github.com/barbiani/slib-tools/pkg/log"
)

const helpDescription = `
Recognize UART frames in a change-based logic analyzer export and write them
out as CSV rows of timestamp, byte value, frame validity and printable
character.

The input is the "export changed values" table a Saleae-style analyzer
produces: a Time[s] column followed by one level column per signal. Frames
are decoded on the chosen channel at the given baud rate with one start
bit, least-significant-first data bits and one stop bit. Infile and outfile
default to stdin and stdout; "-" selects them explicitly.
`

var exampleUsage = strings.TrimSpace(`
  decode-serial UART_TX 3000000 capture.csv decoded.csv
  decode-serial UART_TX 115200 < capture.csv
  decode-serial --bits 7 --all UART_RX 9600 capture.csv
  decode-serial --watch UART_TX 9600 capture.csv decoded.csv
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "decode-serial <channel> <baudrate> [infile [outfile]]",
		Short:   "Decode UART frames from a change-based logic analyzer CSV export",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Args:    cobra.RangeArgs(2, 4),
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.decode-serial/config.toml),
			// then environment, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (DECODE_SERIAL_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			cfg.Channel = args[0]
			baud, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("baudrate %q is not an integer", args[1])
			}
			cfg.BaudRate = baud
			if len(args) > 2 && args[2] != "-" {
				cfg.Input = args[2]
			}
			if len(args) > 3 && args[3] != "-" {
				cfg.Output = args[3]
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.Verbose {
				log = log.Level(zerolog.DebugLevel)
			}
			log.Debug().Interface("config", cfg).Msg("configuration")

			// Setup signal handling for graceful shutdown
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				log.Info().Msg("received signal, stopping...")
				cancel()
			}()

			return app.Run(ctx, cfg, logAdapter.NewZerologLogger(log))
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.decode-serial/config.toml)")
	root.Flags().IntVarP(&cfg.DataBits, "bits", "b", cfg.DataBits, "number of data bits per frame")
	root.Flags().BoolVarP(&cfg.AllFrames, "all", "a", cfg.AllFrames, "also emit frames whose stop bit failed")
	root.Flags().Float64Var(&cfg.TailLength, "tail", cfg.TailLength, "guard region appended after the last change, in seconds")
	root.Flags().BoolVarP(&cfg.Watch, "watch", "w", cfg.Watch, "re-run the decode when the input file changes")
	root.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "settle delay before re-decoding in watch mode")
	root.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("decode-serial")
		os.Exit(1)
	}
}
