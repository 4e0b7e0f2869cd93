package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/git-time-machine/internal/core/styles"
)

const pagerChrome = 1 // footer line

// pager shows content in a scrollable full-screen viewport.
type pager struct {
	viewport viewport.Model
	content  string
	ready    bool
}

func newPager(content string) pager {
	return pager{content: content}
}

func (m pager) Init() tea.Cmd {
	return nil
}

func (m pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-pagerChrome, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "enter", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pager) View() string {
	if !m.ready {
		return ""
	}

	footer := "↑/↓ scroll  q close"
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		footer += fmt.Sprintf("  %.0f%%", m.viewport.ScrollPercent()*100)
	}
	return m.viewport.View() + "\n" + styles.TextMutedStyle.Render(footer)
}

// Page shows content in the alternate screen until the user closes it.
func Page(ctx context.Context, content string) error {
	_, err := tea.NewProgram(newPager(content), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
