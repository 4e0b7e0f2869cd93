// Package config handles configuration loading and validation for git-time-machine.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	GitPath       string         `yaml:"git_path"`
	Days          int            `yaml:"days"`           // analysis window length
	Branch        string         `yaml:"branch"`         // branch analysed by default
	RecentCommits int            `yaml:"recent_commits"` // rows in the recent commits view
	HotFiles      HotFilesConfig `yaml:"hot_files"`
	Clone         CloneConfig    `yaml:"clone"`
	Theme         string         `yaml:"theme"`
}

// HotFilesConfig controls the "most changed files" view.
type HotFilesConfig struct {
	Limit int `yaml:"limit"`
	// Exclude holds doublestar glob patterns matched against repository-relative paths.
	Exclude []string `yaml:"exclude"`
}

// CloneConfig controls how remote repositories are fetched.
type CloneConfig struct {
	// Depth makes a shallow clone when greater than zero.
	Depth int `yaml:"depth"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GitPath:       "git",
		Days:          30,
		Branch:        "main",
		RecentCommits: 10,
		HotFiles: HotFilesConfig{
			Limit:   5,
			Exclude: []string{},
		},
		Theme: "tokyo-night",
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.GitPath == "" {
		c.GitPath = defaults.GitPath
	}
	if c.Days == 0 {
		c.Days = defaults.Days
	}
	if c.Branch == "" {
		c.Branch = defaults.Branch
	}
	if c.RecentCommits == 0 {
		c.RecentCommits = defaults.RecentCommits
	}
	if c.HotFiles.Limit == 0 {
		c.HotFiles.Limit = defaults.HotFiles.Limit
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
}
