package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/git-time-machine/internal/core/doctor"
	"github.com/hay-kot/git-time-machine/internal/core/styles"
	"github.com/hay-kot/git-time-machine/internal/printer"
	"github.com/hay-kot/git-time-machine/pkg/iojson"
)

type DoctorCmd struct {
	flags   *Flags
	app     *App
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags, app *App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your environment",
		UsageText:   "git-time-machine doctor [options]",
		Description: "Runs diagnostic checks on configuration, the git executable, and the temporary clone directory.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "automatically fix issues (prune stale temporary clones)",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks() []doctor.Check {
	return []doctor.Check{
		doctor.NewConfigCheck(cmd.app.Config, cmd.flags.ConfigPath),
		doctor.NewToolsCheck(cmd.app.Config.GitPath, cmd.app.Exec),
		doctor.NewNamespaceCheck(cmd.app.Sessions),
	}
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.autofix {
		removed, err := cmd.app.Sessions.Prune(defaultPruneAge)
		if err != nil {
			printer.Ctx(ctx).Warnf("autofix: %v", err)
		}
		if len(removed) > 0 {
			printer.Ctx(ctx).Successf("Pruned %d stale clone(s)", len(removed))
		}
	}

	rep := doctor.Run(ctx, cmd.checks()...)

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, rep); err != nil {
			return err
		}
	} else {
		cmd.outputText(c.Root().ErrWriter, rep)
	}

	if !rep.Healthy {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) outputText(w io.Writer, rep doctor.Report) {
	divider := styles.DividerStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.TextPrimaryBoldStyle.Render("git-time-machine doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range rep.Checks {
		_, _ = fmt.Fprintln(w, styles.TextForegroundBoldStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.TextMutedStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.TextSuccessStyle.Render(styles.IconSuccess)
			case doctor.StatusWarn:
				icon = styles.TextWarningStyle.Render(styles.IconWarning)
			case doctor.StatusFail:
				icon = styles.TextErrorStyle.Render(styles.IconError)
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	sum := rep.Summary
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		styles.TextSuccessStyle.Render(fmt.Sprintf("%d passed", sum.Passed)),
		styles.TextWarningStyle.Render(fmt.Sprintf("%d warnings", sum.Warned)),
		styles.TextErrorStyle.Render(fmt.Sprintf("%d failed", sum.Failed)),
	)

	if !cmd.autofix && sum.Fixable > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.TextMutedStyle.Render(
			fmt.Sprintf("Run 'git-time-machine doctor --autofix' to prune %d stale clone(s)", sum.Fixable)))
	}
}
