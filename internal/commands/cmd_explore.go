package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/git-time-machine/internal/core/session"
	"github.com/hay-kot/git-time-machine/internal/core/styles"
	"github.com/hay-kot/git-time-machine/internal/printer"
	"github.com/hay-kot/git-time-machine/internal/report"
	"github.com/hay-kot/git-time-machine/internal/tui"
)

type ExploreCmd struct {
	flags *Flags
	app   *App
}

// NewExploreCmd creates the interactive explorer, the root command's action.
func NewExploreCmd(flags *Flags, app *App) *ExploreCmd {
	return &ExploreCmd{flags: flags, app: app}
}

// Flags returns the analysis flags for registration on the root command.
// Root flags are inherited by subcommands.
func (cmd *ExploreCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "days",
			Aliases:     []string{"d"},
			Usage:       "number of days to analyze (defaults to config)",
			Destination: &cmd.flags.Days,
		},
		&cli.StringFlag{
			Name:        "branch",
			Aliases:     []string{"b"},
			Usage:       "branch to analyze (defaults to config)",
			Destination: &cmd.flags.Branch,
		},
		&cli.StringFlag{
			Name:        "author",
			Aliases:     []string{"a"},
			Usage:       "only count commits whose author matches",
			Destination: &cmd.flags.Author,
		},
		&cli.BoolFlag{
			Name:        "detailed",
			Usage:       "show diff statistics and activity in the overview",
			Destination: &cmd.flags.Detailed,
		},
	}
}

// Run executes the explorer. Exported for use as default command.
func (cmd *ExploreCmd) Run(ctx context.Context, c *cli.Command) error {
	ref, err := repositoryArg(c)
	if err != nil {
		return err
	}
	if err := cmd.flags.ApplyOverrides(cmd.app.Config); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	return cmd.app.Sessions.Scope(ctx, ref, func(ctx context.Context, s *session.Session) error {
		if err := cmd.app.checkRepository(ctx, s.WorkingDirectory); err != nil {
			return err
		}
		if s.IsTemporary {
			printer.Ctx(ctx).Successf("Repository ready")
		}

		svc := cmd.app.Report(s.WorkingDirectory, cmd.flags)
		out := c.Root().Writer

		if !tui.Interactive() {
			ov, err := svc.Overview(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, styles.Box(report.TitleOverview, report.RenderOverview(ov, svc.Now())))
			return err
		}

		return tui.NewExplorer(svc, out, tui.WithLogger(cmd.app.Log.With().Str("component", "tui").Logger())).Run(ctx)
	})
}

// repositoryArg returns the optional positional repository reference.
func repositoryArg(c *cli.Command) (string, error) {
	if c.Args().Len() > 1 {
		return "", fmt.Errorf("expected at most one repository, got %d. Run '%s --help' for usage", c.Args().Len(), c.Root().Name)
	}
	return c.Args().First(), nil
}
