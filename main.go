package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/git-time-machine/internal/commands"
	"github.com/hay-kot/git-time-machine/internal/core/config"
	"github.com/hay-kot/git-time-machine/internal/core/session"
	"github.com/hay-kot/git-time-machine/internal/core/styles"
	"github.com/hay-kot/git-time-machine/internal/printer"
	"github.com/hay-kot/git-time-machine/pkg/executil"
	"github.com/hay-kot/git-time-machine/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

// exitInterrupted follows the shell convention of 128 + SIGINT.
const exitInterrupted = 130

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		gtmApp    = &commands.App{}
		p         = printer.New(os.Stderr)
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "git-time-machine",
		Usage:     "Interactive git history visualization and analysis",
		UsageText: "git-time-machine [global options] [repository]",
		Description: `Explore a repository's history from the terminal.

The repository argument is a local path or a remote URL (https, ssh, git,
file, or user@host:path). Remote repositories are cloned into a private
temporary directory that is removed when the program exits, including on
ctrl+c. With no argument the current directory is used.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("GTM_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logs go to stderr when unset)",
				Sources:     cli.EnvVars("GTM_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("GTM_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			// Git must never block on a credential prompt behind the spinner.
			exec := &executil.RealExecutor{Env: []string{"GIT_TERMINAL_PROMPT=0"}}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*gtmApp = *commands.NewApp(cfg, exec, p, log.Logger)

			return printer.NewContext(ctx, p), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	exploreCmd := commands.NewExploreCmd(flags, gtmApp)

	app = commands.NewOverviewCmd(flags, gtmApp).Register(app)
	app = commands.NewDoctorCmd(flags, gtmApp).Register(app)
	app = commands.NewPruneCmd(flags, gtmApp).Register(app)

	// Register analysis flags on root command
	app.Flags = append(app.Flags, exploreCmd.Flags()...)

	// Explorer is the default action when no subcommand is provided
	app.Action = exploreCmd.Run

	os.Exit(exitCode(app.Run(ctx, os.Args), p))
}

// exitCode reports err and maps it to the process exit status.
func exitCode(err error, p *printer.Printer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, session.ErrInterrupted):
		p.Warnf("Interrupted")
		return exitInterrupted
	case errors.As(err, new(*commands.ReportedError)):
		return 1
	default:
		p.Errorf("%s", err.Error())
		return 1
	}
}
