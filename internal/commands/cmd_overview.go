package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/git-time-machine/internal/core/session"
	"github.com/hay-kot/git-time-machine/internal/core/styles"
	"github.com/hay-kot/git-time-machine/internal/report"
	"github.com/hay-kot/git-time-machine/pkg/iojson"
)

type OverviewCmd struct {
	flags *Flags
	app   *App
	json  bool
}

// NewOverviewCmd creates a new overview command
func NewOverviewCmd(flags *Flags, app *App) *OverviewCmd {
	return &OverviewCmd{flags: flags, app: app}
}

// Register adds the overview command to the application
func (cmd *OverviewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "overview",
		Usage:     "Print the repository overview and exit",
		UsageText: "git-time-machine overview [options] [repository]",
		Description: `Prints the same summary as the interactive overview without showing a menu.

A remote repository is cloned into a temporary directory that is removed
before the command exits.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *OverviewCmd) run(ctx context.Context, c *cli.Command) error {
	ref, err := repositoryArg(c)
	if err != nil {
		return err
	}
	if err := cmd.flags.ApplyOverrides(cmd.app.Config); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	err = cmd.app.Sessions.Scope(ctx, ref, func(ctx context.Context, s *session.Session) error {
		if err := cmd.app.checkRepository(ctx, s.WorkingDirectory); err != nil {
			return err
		}

		svc := cmd.app.Report(s.WorkingDirectory, cmd.flags)
		ov, err := svc.Overview(ctx)
		if err != nil {
			return fmt.Errorf("overview: %w", err)
		}

		if cmd.json {
			return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, ov)
		}

		_, err = fmt.Fprintln(c.Root().Writer, styles.Box(report.TitleOverview, report.RenderOverview(ov, svc.Now())))
		return err
	})
	if err != nil && cmd.json {
		_ = iojson.WriteErrorTo(c.Root().ErrWriter, err.Error(), map[string]any{"repository": ref})
		return &ReportedError{Err: err}
	}
	return err
}
