package simulator

import "fmt"

// Logger is the sink for the Simulator's orchestration-level diagnostics
// (the hardware Grid fallback).
type Logger interface {
	Printf(format string, args ...interface{})
}

// StdLogger writes to stdout.
type StdLogger struct{}

// Printf implements Logger.
func (StdLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NullLogger discards everything. Useful for tests and embedders that wire
// their own diagnostics.
type NullLogger struct{}

// Printf implements Logger.
func (NullLogger) Printf(format string, args ...interface{}) {}
