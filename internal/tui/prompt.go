package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"github.com/hay-kot/git-time-machine/internal/core/styles"
)

// Prompter asks the user for input.
type Prompter interface {
	// Select shows a single-choice menu and returns the chosen option.
	Select(ctx context.Context, title string, options []string) (string, error)
	// Input asks for one non-empty line of text.
	Input(ctx context.Context, title, placeholder string) (string, error)
	// Continue blocks until the user acknowledges the output.
	Continue(ctx context.Context) error
}

// Spinner runs action while showing title.
type Spinner func(ctx context.Context, title string, action func()) error

// HuhPrompter implements Prompter with huh forms.
type HuhPrompter struct{}

func (HuhPrompter) Select(ctx context.Context, title string, options []string) (string, error) {
	var choice string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(huh.NewOptions(options...)...).
				Value(&choice),
		),
	).WithTheme(styles.FormTheme()).RunWithContext(ctx)
	return choice, err
}

func (HuhPrompter) Input(ctx context.Context, title, placeholder string) (string, error) {
	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Validate(required).
				Value(&value),
		),
	).WithTheme(styles.FormTheme()).RunWithContext(ctx)
	return strings.TrimSpace(value), err
}

func (HuhPrompter) Continue(ctx context.Context) error {
	var discard string
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Press enter to continue...").
				Inline(true).
				Value(&discard),
		),
	).WithTheme(styles.FormTheme()).RunWithContext(ctx)
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// Waiting returns a Spinner that returns only after action has finished.
// s may stop as soon as ctx is cancelled; the wrapper then blocks until
// action observes the cancellation and returns. A panic in action is
// re-raised on the caller's goroutine.
func Waiting(s Spinner) Spinner {
	return func(ctx context.Context, title string, action func()) error {
		var (
			done      = make(chan struct{})
			recovered any
		)
		go func() {
			defer close(done)
			defer func() { recovered = recover() }()
			action()
		}()

		err := s(ctx, title, func() {
			select {
			case <-done:
			case <-ctx.Done():
			}
		})
		<-done

		if recovered != nil {
			panic(recovered)
		}
		return err
	}
}

// HuhSpinner runs action under a huh spinner.
func HuhSpinner(ctx context.Context, title string, action func()) error {
	return spinner.New().
		Title(" " + title).
		Context(ctx).
		Action(action).
		Run()
}
