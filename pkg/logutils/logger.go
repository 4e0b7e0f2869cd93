// Package logutils builds the zerolog logger used by every command.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// New builds a logger at level ("debug", "info", "warn", "error").
//
// With no file, entries are rendered for humans on stderr, keeping stdout
// free for command output such as `overview --json`. With a file, entries
// are appended as JSON lines tagged with the process id, so several runs
// can share one log. The returned func closes the file.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	if file == "" {
		console := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
		}
		return zerolog.New(console).Level(lvl).With().Timestamp().Logger(), closer, nil
	}

	// Logs can contain clone URLs, so keep them private to the user.
	if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("open log file: %w", err)
	}
	closer = func() { _ = f.Close() }

	return newJSON(f, lvl), closer, nil
}

func newJSON(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(lvl).With().Timestamp().Int("pid", os.Getpid()).Logger()
}
