// Package log defines the logging abstraction used by the slib-tools
// libraries.
//
// Library packages (pkg/uart, internal/app, internal/watch) log through the
// Logger interface so they stay decoupled from any concrete logging
// dependency. Two implementations ship with the module: ZerologLogger,
// which adapts a zerolog.Logger, and NoopLogger, which discards everything
// and is the default wherever a Logger is optional.
//
// # Usage
//
// Wrap an existing zerolog logger for the libraries:
//
//	logger := log.NewZerologLogger(zerolog.New(os.Stderr))
//	logger.Info("decode complete", log.Int("frames", n))
//
// Or implement Logger to plug in another backend.
package log
