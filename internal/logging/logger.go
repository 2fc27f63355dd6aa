// Package logging wraps zap behind a small interface so the scoring core
// never reaches for a process-wide logger directly. Components that want
// to log take a logging.Logger through constructor injection; the core
// remains pure and testable against logging.NoOp().
package logging

import "go.uber.org/zap"

// Logger is the minimal structured logging surface the core depends on.
// It is satisfied by *zap.SugaredLogger and by NoOp().
type Logger interface {
	Warnw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// New builds a production zap logger wrapped as a Logger.
func New() (Logger, func(), error) {
	zl, err := zap.NewProduction()
	if err != nil {
		return nil, func() {}, err
	}
	return zl.Sugar(), func() { _ = zl.Sync() }, nil
}

// NoOp returns a Logger that discards everything, for tests and for the
// default construction of pure scoring-core components.
func NoOp() Logger { return noop{} }

type noop struct{}

func (noop) Warnw(string, ...interface{})  {}
func (noop) Infow(string, ...interface{})  {}
func (noop) Errorw(string, ...interface{}) {}
