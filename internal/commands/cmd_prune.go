package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/git-time-machine/internal/printer"
)

// defaultPruneAge keeps clones that may still belong to a running session.
const defaultPruneAge = 24 * time.Hour

type PruneCmd struct {
	flags     *Flags
	app       *App
	olderThan time.Duration
}

// NewPruneCmd creates a new prune command
func NewPruneCmd(flags *Flags, app *App) *PruneCmd {
	return &PruneCmd{flags: flags, app: app}
}

// Register adds the prune command to the application
func (cmd *PruneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "prune",
		Usage:     "Remove leftover temporary clones",
		UsageText: "git-time-machine prune [options]",
		Description: `Deletes repo-* directories left in the temporary namespace by runs whose
cleanup failed or that were killed.

Directories younger than --older-than are kept because they may belong to
a session that is still running.`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "older-than",
				Usage:       "only remove clones last modified before this long ago",
				Value:       defaultPruneAge,
				Destination: &cmd.olderThan,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PruneCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	removed, err := cmd.app.Sessions.Prune(cmd.olderThan)
	for _, dir := range removed {
		p.Infof("Removed %s", dir)
	}
	if err != nil {
		return fmt.Errorf("prune temporary clones: %w", err)
	}

	if len(removed) == 0 {
		p.Infof("No leftover clones older than %s", cmd.olderThan)
		return nil
	}

	p.Successf("Pruned %d clone(s)", len(removed))

	return nil
}
