package cliconfig

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/barbiani/slib-tools/internal/watch"
	"github.com/barbiani/slib-tools/pkg/trace"
	"github.com/barbiani/slib-tools/pkg/uart"
)

// Config holds CLI configuration for decode-serial.
type Config struct {
	// Channel and BaudRate come from the positional arguments.
	Channel  string
	BaudRate int

	// Input and Output are file paths; empty means stdin and stdout.
	Input  string
	Output string

	DataBits   int
	AllFrames  bool
	TailLength float64

	Watch    bool
	Debounce time.Duration

	Verbose bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		DataBits:   uart.DefaultDataBits,
		TailLength: trace.DefaultTailLength,
		Debounce:   watch.DefaultDebounce,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Channel == "" {
		return fmt.Errorf("channel is required")
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("baudrate must be positive")
	}
	if c.DataBits < 1 || c.DataBits > uart.MaxDataBits {
		return fmt.Errorf("bits must be between 1 and %d", uart.MaxDataBits)
	}
	if c.TailLength < 0 {
		return fmt.Errorf("tail length must not be negative")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	if c.Watch {
		if c.Input == "" {
			return fmt.Errorf("watch mode requires an input file, not stdin")
		}
		if c.Output == "" {
			return fmt.Errorf("watch mode requires an output file, not stdout")
		}
		// Decoding onto the watched input would retrigger itself forever.
		if filepath.Clean(c.Input) == filepath.Clean(c.Output) {
			return fmt.Errorf("watch mode requires distinct input and output files")
		}
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setFloat sets a float64 value from a pointer if not nil and flag not
// changed. The pointer keeps an explicit zero distinguishable from unset,
// a zero tail length being meaningful.
func (s *configSetter) setFloat(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination.
// Zero is applied as-is; Validate rejects negatives later.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
