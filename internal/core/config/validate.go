package config

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/git-time-machine/internal/core/styles"
)

// maxDays bounds the analysis window; beyond ten years the activity view is noise.
const maxDays = 3650

// Validate checks that the configuration is structurally valid. It performs
// no I/O; see ValidateDeep.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if strings.TrimSpace(c.GitPath) == "" {
		errs = errs.Append("git_path", fmt.Errorf("cannot be empty"))
	}
	if c.Days < 1 || c.Days > maxDays {
		errs = errs.Append("days", fmt.Errorf("must be between 1 and %d, got %d", maxDays, c.Days))
	}
	if strings.TrimSpace(c.Branch) == "" || strings.HasPrefix(c.Branch, "-") {
		errs = errs.Append("branch", fmt.Errorf("invalid branch name %q", c.Branch))
	}
	if c.RecentCommits < 1 {
		errs = errs.Append("recent_commits", fmt.Errorf("must be at least 1"))
	}
	if c.HotFiles.Limit < 1 {
		errs = errs.Append("hot_files.limit", fmt.Errorf("must be at least 1"))
	}
	for i, pattern := range c.HotFiles.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("hot_files.exclude[%d]", i), fmt.Errorf("invalid glob %q", pattern))
		}
	}
	if c.Clone.Depth < 0 {
		errs = errs.Append("clone.depth", fmt.Errorf("cannot be negative"))
	}
	if _, ok := styles.GetPalette(c.Theme); !ok {
		errs = errs.Append("theme", fmt.Errorf("unknown theme %q (available: %s)", c.Theme, strings.Join(styles.ThemeNames(), ", ")))
	}

	return errs.ToError()
}

// ValidateDeep performs Validate plus checks that touch the filesystem: the
// config file and the git executable. An empty configPath skips the file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		gitExecutableExists(c.GitPath),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// gitExecutableExists validates that the git path is executable.
func gitExecutableExists(path string) error {
	if _, err := exec.LookPath(path); err != nil {
		return criterio.NewFieldErrors("git_path", fmt.Errorf("executable not found: %s", path))
	}
	return nil
}
