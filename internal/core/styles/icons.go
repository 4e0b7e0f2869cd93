package styles

// Status icons used by CLI output.
var (
	IconSuccess = "✔"
	IconWarning = "●"
	IconError   = "✘"
	IconInfo    = "›"
)

// Banner is printed above the interactive menu.
const Banner = `╭─────────────────────────────╮
│      git-time-machine       │
╰─────────────────────────────╯`
