package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (DECODE_SERIAL_*). It respects flags that have been explicitly set
// (changed map). Returns an error if any environment variable has an
// invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setIntFromString("bits", os.Getenv("DECODE_SERIAL_BITS"), &cfg.DataBits); err != nil {
		return err
	}
	if err := s.setFloatFromString("tail", os.Getenv("DECODE_SERIAL_TAIL_LENGTH"), &cfg.TailLength); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("DECODE_SERIAL_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("all", os.Getenv("DECODE_SERIAL_ALL"), &cfg.AllFrames)
	s.setBoolFromString("watch", os.Getenv("DECODE_SERIAL_WATCH"), &cfg.Watch)
	s.setBoolFromString("verbose", os.Getenv("DECODE_SERIAL_VERBOSE"), &cfg.Verbose)

	return nil
}
