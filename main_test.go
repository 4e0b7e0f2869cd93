package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/git-time-machine/internal/commands"
	"github.com/hay-kot/git-time-machine/internal/core/session"
	"github.com/hay-kot/git-time-machine/internal/printer"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		out  string
	}{
		{name: "success", err: nil, want: 0},
		{name: "interrupted", err: fmt.Errorf("%w: context canceled", session.ErrInterrupted), want: exitInterrupted, out: "Interrupted"},
		{name: "fetch", err: &session.FetchError{URL: "https://x/y.git", Err: errors.New("auth failed")}, want: 1, out: "fetch https://x/y.git: auth failed"},
		{name: "already reported", err: &commands.ReportedError{Err: errors.New("not a git repository")}, want: 1},
		{name: "acquisition", err: &session.AcquisitionError{Path: "/nope", Err: errors.New("no such file")}, want: 1, out: "acquire /nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.want, exitCode(tt.err, printer.New(&buf)))
			if tt.out == "" {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tt.out)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	assert.NotEmpty(t, build())
}
