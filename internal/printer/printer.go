// Package printer writes user-facing status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/git-time-machine/internal/core/styles"
)

type ctxKey struct{}

// Printer formats status messages with the active theme.
type Printer struct {
	out io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{out: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) line(icon, text string) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", icon, text)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.TextPrimaryStyle.Render(styles.IconInfo), fmt.Sprintf(format, args...))
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.TextSuccessStyle.Render(styles.IconSuccess), fmt.Sprintf(format, args...))
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.TextWarningStyle.Render(styles.IconWarning), fmt.Sprintf(format, args...))
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.TextErrorStyle.Render(styles.IconError), fmt.Sprintf(format, args...))
}

// Success prints a bold title followed by a muted detail line.
func (p *Printer) Success(title, detail string) {
	p.line(styles.TextSuccessStyle.Render(styles.IconSuccess), styles.TextForegroundBoldStyle.Render(title))
	if detail != "" {
		_, _ = fmt.Fprintf(p.out, "  %s\n", styles.TextMutedStyle.Render(detail))
	}
}

// Section prints a heading.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.out, styles.TextPrimaryBoldStyle.Render(title))
}
