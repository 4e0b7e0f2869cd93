// Package tui implements the interactive history explorer.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/hay-kot/git-time-machine/internal/core/git"
	"github.com/hay-kot/git-time-machine/internal/core/styles"
	"github.com/hay-kot/git-time-machine/internal/report"
)

const menuTitle = "What would you like to do?"

// Explorer drives the menu loop for one repository.
type Explorer struct {
	svc     *report.Service
	out     io.Writer
	prompt  Prompter
	spin    Spinner
	page    func(ctx context.Context, content string) error
	height  func() int
	log     zerolog.Logger
	actions []action
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithPrompter replaces the huh prompts.
func WithPrompter(p Prompter) Option {
	return func(e *Explorer) { e.prompt = p }
}

// WithSpinner replaces the huh spinner.
func WithSpinner(s Spinner) Option {
	return func(e *Explorer) { e.spin = s }
}

// WithPager sets how output taller than the terminal is shown, and how the
// terminal height is measured. A height of zero disables paging.
func WithPager(page func(ctx context.Context, content string) error, height func() int) Option {
	return func(e *Explorer) {
		e.page = page
		e.height = height
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Explorer) { e.log = l }
}

// NewExplorer creates an Explorer that prints to out.
func NewExplorer(svc *report.Service, out io.Writer, opts ...Option) *Explorer {
	e := &Explorer{
		svc:     svc,
		out:     out,
		prompt:  HuhPrompter{},
		spin:    HuhSpinner,
		page:    Page,
		height:  TerminalHeight,
		log:     zerolog.Nop(),
		actions: actions(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.spin = Waiting(e.spin)
	return e
}

// Run shows the menu until the user exits, aborts, or ctx is cancelled.
// Query failures are printed and the loop continues.
func (e *Explorer) Run(ctx context.Context) error {
	_, _ = fmt.Fprintln(e.out, styles.BannerStyle.Render(styles.Banner))

	labels := make([]string, 0, len(e.actions)+1)
	for _, a := range e.actions {
		labels = append(labels, a.label)
	}
	labels = append(labels, exitLabel)

	for {
		if ctx.Err() != nil {
			return nil
		}

		choice, err := e.prompt.Select(ctx, menuTitle, labels)
		if err != nil {
			return e.stop(ctx, err)
		}
		if choice == exitLabel {
			return nil
		}

		act, ok := e.lookup(choice)
		if !ok {
			return fmt.Errorf("unknown menu entry %q", choice)
		}

		if err := e.perform(ctx, act); err != nil {
			return e.stop(ctx, err)
		}

		if err := e.prompt.Continue(ctx); err != nil {
			return e.stop(ctx, err)
		}
	}
}

// stop treats user aborts and cancellation as a normal end of the loop.
func (e *Explorer) stop(ctx context.Context, err error) error {
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		e.log.Debug().Err(err).Msg("explorer stopped")
		return nil
	}
	return err
}

func (e *Explorer) lookup(label string) (action, bool) {
	for _, a := range e.actions {
		if a.label == label {
			return a, true
		}
	}
	return action{}, false
}

func (e *Explorer) perform(ctx context.Context, act action) error {
	var args []string
	if act.ask != nil {
		var err error
		if args, err = act.ask(ctx, e.prompt); err != nil {
			return err
		}
	}

	var (
		body     string
		queryErr error
	)
	err := e.spin(ctx, act.loading, func() {
		body, queryErr = act.run(ctx, e.svc, args)
	})
	if err != nil {
		return err
	}

	if queryErr != nil {
		var qe *git.QueryError
		if !errors.As(queryErr, &qe) || ctx.Err() != nil {
			return queryErr
		}
		e.log.Warn().Err(qe.Err).Str("command", qe.Command()).Msg("query failed")
		_, _ = fmt.Fprintf(e.out, "%s %s\n", styles.TextErrorStyle.Render(styles.IconError), qe.Error())
		return nil
	}

	return e.show(ctx, styles.Box(act.title, body))
}

func (e *Explorer) show(ctx context.Context, content string) error {
	if h := e.height(); h > 0 && strings.Count(content, "\n")+1 > h {
		return e.page(ctx, content)
	}
	_, err := fmt.Fprintln(e.out, content)
	return err
}
