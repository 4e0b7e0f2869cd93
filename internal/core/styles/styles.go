// Package styles provides shared lipgloss styles for CLI and menu output.
package styles

import "github.com/charmbracelet/lipgloss"

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	TextPrimaryStyle        lipgloss.Style
	TextPrimaryBoldStyle    lipgloss.Style
	TextSecondaryStyle      lipgloss.Style
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextMutedStyle          lipgloss.Style
	TextSuccessStyle        lipgloss.Style
	TextWarningStyle        lipgloss.Style
	TextErrorStyle          lipgloss.Style

	BannerStyle   lipgloss.Style
	BoxStyle      lipgloss.Style
	BoxTitleStyle lipgloss.Style
	DividerStyle  lipgloss.Style

	GitHashStyle      lipgloss.Style
	GitAuthorStyle    lipgloss.Style
	GitBranchStyle    lipgloss.Style
	GitAdditionsStyle lipgloss.Style
	GitDeletionsStyle lipgloss.Style

	SparklineStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TextPrimaryStyle = lipgloss.NewStyle().Foreground(p.Primary)
	TextPrimaryBoldStyle = TextPrimaryStyle.Bold(true)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	TextForegroundStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	TextForegroundBoldStyle = TextForegroundStyle.Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	TextWarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	TextErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	BannerStyle = lipgloss.NewStyle().Foreground(p.Primary)
	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	BoxTitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		MarginBottom(1)
	DividerStyle = lipgloss.NewStyle().Foreground(p.Muted)

	GitHashStyle = lipgloss.NewStyle().Foreground(p.Hash)
	GitAuthorStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	GitBranchStyle = lipgloss.NewStyle().Foreground(p.Hash)
	GitAdditionsStyle = lipgloss.NewStyle().Foreground(p.Added)
	GitDeletionsStyle = lipgloss.NewStyle().Foreground(p.Removed)

	SparklineStyle = lipgloss.NewStyle().Foreground(p.Graph)
}

// Box renders body inside a rounded border with a title line.
func Box(title, body string) string {
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, BoxTitleStyle.Render(title), body))
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
