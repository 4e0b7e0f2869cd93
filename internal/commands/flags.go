package commands

import (
	"os"
	"path/filepath"

	"github.com/hay-kot/git-time-machine/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Analysis flags shared by the root action and subcommands. Zero values
	// mean "use the config file".
	Days     int
	Branch   string
	Author   string
	Detailed bool

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "git-time-machine", "config.yaml")
}

// ApplyOverrides copies analysis flags that were set on the command line
// over the loaded config and re-validates it. Commands call it from their
// action because flags given after a subcommand name are parsed after the
// root Before hook.
func (f *Flags) ApplyOverrides(cfg *config.Config) error {
	if f.Days != 0 {
		cfg.Days = f.Days
	}
	if f.Branch != "" {
		cfg.Branch = f.Branch
	}
	return cfg.Validate()
}
