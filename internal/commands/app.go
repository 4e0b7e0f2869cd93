package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/git-time-machine/internal/core/config"
	"github.com/hay-kot/git-time-machine/internal/core/git"
	"github.com/hay-kot/git-time-machine/internal/core/session"
	"github.com/hay-kot/git-time-machine/internal/printer"
	"github.com/hay-kot/git-time-machine/internal/report"
	"github.com/hay-kot/git-time-machine/internal/tui"
	"github.com/hay-kot/git-time-machine/pkg/executil"
)

// App holds the services shared by all commands. It is populated in the
// root Before hook.
type App struct {
	Config   *config.Config
	Exec     executil.Executor
	Git      git.Git
	Sessions *session.Manager
	Log      zerolog.Logger
}

// NewApp wires the git executor and session manager from cfg. Session
// options are applied after the defaults, so tests can redirect the temp root.
func NewApp(cfg *config.Config, exec executil.Executor, p *printer.Printer, log zerolog.Logger, opts ...session.Option) *App {
	gitExec := git.NewExecutor(cfg.GitPath, exec).WithCloneDepth(cfg.Clone.Depth)

	sessionOpts := []session.Option{
		session.WithLogger(log.With().Str("component", "session").Logger()),
		session.WithWarner(func(w *session.CleanupWarning) { p.Warnf("%s", w.Error()) }),
	}

	return &App{
		Config:   cfg,
		Exec:     exec,
		Git:      gitExec,
		Sessions: session.New(&spinningCloner{git: gitExec, spin: tui.Waiting(cloneSpinner())}, append(sessionOpts, opts...)...),
		Log:      log,
	}
}

// Report builds a report service for dir using the config and analysis flags.
func (a *App) Report(dir string, flags *Flags) *report.Service {
	return report.NewService(a.Git, dir, reportOptions(a.Config, flags), a.Log.With().Str("component", "report").Logger())
}

func reportOptions(cfg *config.Config, flags *Flags) report.Options {
	return report.Options{
		Days:        cfg.Days,
		Branch:      cfg.Branch,
		Author:      flags.Author,
		Detailed:    flags.Detailed,
		RecentLimit: cfg.RecentCommits,
		HotLimit:    cfg.HotFiles.Limit,
		Exclude:     cfg.HotFiles.Exclude,
	}
}

// checkRepository fails when dir is not inside a git work tree.
func (a *App) checkRepository(ctx context.Context, dir string) error {
	ok, err := a.Git.IsRepository(ctx, dir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s is not a git repository", dir)
	}
	return nil
}

// ReportedError wraps an error the command has already written out, for
// example as a JSON error document. main exits non-zero without printing it
// again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// spinningCloner shows a spinner while a clone runs. spin must not return
// before the clone does; see tui.Waiting.
type spinningCloner struct {
	git  git.Git
	spin tui.Spinner
}

func (c *spinningCloner) Clone(ctx context.Context, url, dest string) error {
	var err error
	spinErr := c.spin(ctx, "Cloning "+url+"...", func() { err = c.git.Clone(ctx, url, dest) })
	if err != nil {
		return err
	}
	return spinErr
}

func cloneSpinner() tui.Spinner {
	if tui.Interactive() {
		return tui.HuhSpinner
	}
	return func(_ context.Context, _ string, action func()) error {
		action()
		return nil
	}
}
