package doctor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/git-time-machine/pkg/executil"
)

func stubLookPath(t *testing.T, fn func(string) (string, error)) {
	t.Helper()
	orig := lookPathFunc
	t.Cleanup(func() { lookPathFunc = orig })
	lookPathFunc = fn
}

func TestToolsCheck_GitPresent(t *testing.T) {
	stubLookPath(t, func(file string) (string, error) {
		return "/usr/bin/" + file, nil
	})

	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"/usr/bin/git --version": []byte("git version 2.45.1\n")},
	}

	result := NewToolsCheck("git", rec).Run(context.Background())

	assert.Equal(t, "Dependencies", result.Name)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "git", result.Items[0].Label)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "2.45.1 (/usr/bin/git)", result.Items[0].Detail)
}

func TestToolsCheck_GitMissing(t *testing.T) {
	stubLookPath(t, func(file string) (string, error) {
		return "", &exec.Error{Name: file, Err: fmt.Errorf("not found")}
	})

	result := NewToolsCheck("/opt/git", &executil.RecordingExecutor{}).Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Contains(t, result.Items[0].Detail, "/opt/git not found on PATH")
}

func TestToolsCheck_GitBroken(t *testing.T) {
	stubLookPath(t, func(file string) (string, error) {
		return "/usr/bin/" + file, nil
	})

	rec := &executil.RecordingExecutor{
		Errors: map[string]error{"/usr/bin/git --version": errors.New("exec format error")},
	}

	result := NewToolsCheck("git", rec).Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Contains(t, result.Items[0].Detail, "exec format error")
}
