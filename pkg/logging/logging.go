// Package logging configures the process-wide structured logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/coreos/go-systemd/v22/journal"
)

// Stdout as a logfile destination means stderr logging, same as no logfile.
const stdoutDest = "-"

// Options configure the process-wide logger.
type Options struct {
	// Name is attached to every record as the program name.
	Name string
	// Verbosity selects the level: 0 warn, 1 info, 2 and above debug.
	Verbosity int
	// Logfile receives records instead of stderr when set.
	Logfile string
	// Syslog duplicates error records to the systemd journal.
	Syslog bool
}

// Setup builds the logger described by o and installs it as the process
// default. Every record carries the program name and pid so that log lines
// survive the process replacement with a usable correlation key.
func Setup(o Options) (*slog.Logger, error) {
	var w io.Writer = os.Stderr
	if o.Logfile != "" && o.Logfile != stdoutDest {
		f, err := os.OpenFile(o.Logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open logfile: %w", err)
		}
		w = f
	}

	var h slog.Handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level(o.Verbosity)})
	if o.Syslog && journal.Enabled() {
		h = &journalHandler{Handler: h}
	}

	logger := slog.New(h).With("name", o.Name, "pid", os.Getpid())
	slog.SetDefault(logger)
	return logger, nil
}

func level(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// journalHandler fans error records out to the systemd journal in addition
// to the wrapped handler.
type journalHandler struct {
	slog.Handler
}

func (h *journalHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		// journal delivery is best effort
		_ = journal.Send(r.Message, journal.PriErr, nil)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *journalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &journalHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *journalHandler) WithGroup(name string) slog.Handler {
	return &journalHandler{Handler: h.Handler.WithGroup(name)}
}
