package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// building attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by the engine. The engine is silent
// by default; pass nil to silence it again.
//
// Levels:
//   - [slog.LevelDebug]: per-level progress
//   - [slog.LevelInfo]: run started, finished and cancelled
//   - [slog.LevelWarn]: failed runs
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the engine logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
