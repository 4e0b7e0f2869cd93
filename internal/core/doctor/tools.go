package doctor

import (
	"context"
	"os/exec"
	"strings"

	"github.com/hay-kot/git-time-machine/pkg/executil"
)

// lookPathFunc is the function used to find executables on PATH.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

// ToolsCheck verifies that the git executable is available and runnable.
type ToolsCheck struct {
	gitPath string
	exec    executil.Executor
}

// NewToolsCheck creates a new tools check for the configured git binary.
func NewToolsCheck(gitPath string, exec executil.Executor) *ToolsCheck {
	return &ToolsCheck{gitPath: gitPath, exec: exec}
}

func (c *ToolsCheck) Name() string {
	return "Dependencies"
}

func (c *ToolsCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	path, err := lookPathFunc(c.gitPath)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "git",
			Status: StatusFail,
			Detail: c.gitPath + " not found on PATH",
		})
		return result
	}

	out, err := c.exec.Run(ctx, path, "--version")
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "git",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "git",
		Status: StatusPass,
		Detail: strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(out)), "git version")) + " (" + path + ")",
	})

	return result
}
