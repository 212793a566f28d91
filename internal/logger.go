// Package internal provides the small structured-logging helper shared by
// every engine package, mirroring the embeddable logger pattern used
// throughout the stack this project is built on.
package internal

import "log/slog"

// LevelTrace is a verbosity level below slog.LevelDebug, used by
// Logger.Trace. No engine package logs at this level.
const LevelTrace slog.Level = slog.LevelDebug - 4

// Logger is held as a package-level variable by the engine packages (and
// as a field by phys.Receiver) to report drops and configuration errors
// without forcing every caller to thread a *slog.Logger through every call.
type Logger struct {
	Log *slog.Logger
}

func (l Logger) logger() *slog.Logger {
	if l.Log == nil {
		return slog.Default()
	}
	return l.Log
}

func (l Logger) Error(msg string, args ...any) { l.logger().Error(msg, args...) }
func (l Logger) Warn(msg string, args ...any)  { l.logger().Warn(msg, args...) }
func (l Logger) Info(msg string, args ...any)  { l.logger().Info(msg, args...) }
func (l Logger) Debug(msg string, args ...any) { l.logger().Debug(msg, args...) }
func (l Logger) Trace(msg string, args ...any) { l.logger().Log(nil, LevelTrace, msg, args...) }
