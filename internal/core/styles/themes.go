package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette assigns colors to the roles used in menus, boxes and git output.
type Palette struct {
	Primary    lipgloss.Color // titles, borders, banner
	Secondary  lipgloss.Color // prompt cursor and selector
	Foreground lipgloss.Color
	Muted      lipgloss.Color // labels, relative times
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color

	Hash    lipgloss.Color // commit hashes and branch names
	Added   lipgloss.Color // diffstat insertions
	Removed lipgloss.Color // diffstat deletions
	Graph   lipgloss.Color // activity sparkline
}

// DefaultTheme suits dark terminals; pick "light" or "mono" otherwise.
const DefaultTheme = "tokyo-night"

var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
		Hash:       lipgloss.Color("#e0af68"),
		Added:      lipgloss.Color("#9ece6a"),
		Removed:    lipgloss.Color("#f7768e"),
		Graph:      lipgloss.Color("#73daca"),
	},
	"light": {
		Primary:    lipgloss.Color("#2e7de9"),
		Secondary:  lipgloss.Color("#007197"),
		Foreground: lipgloss.Color("#3760bf"),
		Muted:      lipgloss.Color("#848cb5"),
		Surface:    lipgloss.Color("#c4c8da"),
		Success:    lipgloss.Color("#587539"),
		Warning:    lipgloss.Color("#8c6c3e"),
		Error:      lipgloss.Color("#f52a65"),
		Hash:       lipgloss.Color("#b15c00"),
		Added:      lipgloss.Color("#587539"),
		Removed:    lipgloss.Color("#c64343"),
		Graph:      lipgloss.Color("#118c74"),
	},
	// ANSI indexes only, for terminals without truecolor.
	"mono": {
		Primary:    lipgloss.Color("15"),
		Secondary:  lipgloss.Color("7"),
		Foreground: lipgloss.Color("7"),
		Muted:      lipgloss.Color("8"),
		Surface:    lipgloss.Color("0"),
		Success:    lipgloss.Color("15"),
		Warning:    lipgloss.Color("7"),
		Error:      lipgloss.Color("15"),
		Hash:       lipgloss.Color("7"),
		Added:      lipgloss.Color("15"),
		Removed:    lipgloss.Color("8"),
		Graph:      lipgloss.Color("15"),
	},
}

// ThemeNames lists the accepted values of the theme setting, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette looks up a theme by name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}
