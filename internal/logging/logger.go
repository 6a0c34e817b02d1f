package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates a configured application logger.
// It writes to Stderr so diagnostics never interleave with the workflow
// command stream on Stdout. It standardizes common keys (e.g. "error" ->
// "err").
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// LevelFromEnv resolves the log level from the runner's debug convention:
// RUNNER_DEBUG=1 (or a truthy ACTIONS_STEP_DEBUG) enables debug logging.
func LevelFromEnv(lookup func(string) (string, bool)) slog.Level {
	if v, ok := lookup("RUNNER_DEBUG"); ok && v == "1" {
		return slog.LevelDebug
	}
	if v, ok := lookup("ACTIONS_STEP_DEBUG"); ok && v == "true" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
