// Package executil runs external processes against an explicit working directory.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const maxStderrLen = 500

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// Executor runs commands and returns their standard output.
type Executor interface {
	// Run executes a command in the inherited working directory.
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
	// RunDir executes a command with dir as its working directory.
	RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error)
}

// RealExecutor runs real processes.
//
// Stdout is returned to the caller. Stderr is kept out of the output and,
// on failure, becomes part of the error message, capped at 500 bytes so a
// noisy command cannot flood logs or the terminal. The *exec.ExitError is
// preserved via wrapping.
type RealExecutor struct {
	// Env holds extra KEY=VALUE pairs appended to the parent environment.
	Env []string
}

// Run executes a command in the inherited working directory.
func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return e.run(ctx, "", cmd, args...)
}

// RunDir executes a command in a specific directory.
func (e *RealExecutor) RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	return e.run(ctx, dir, cmd, args...)
}

func (e *RealExecutor) run(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	c.Dir = dir
	if len(e.Env) > 0 {
		c.Env = append(os.Environ(), e.Env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &limitedWriter{buf: &stderr, max: maxStderrLen}

	if err := c.Run(); err != nil {
		where := ""
		if dir != "" {
			where = " in " + dir
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.Bytes(), fmt.Errorf("exec %s%s: %s: %w", cmd, where, msg, err)
		}
		return stdout.Bytes(), fmt.Errorf("exec %s%s: %w", cmd, where, err)
	}

	return stdout.Bytes(), nil
}
