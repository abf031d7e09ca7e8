package tui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Stride Search launcher

Runs the Stride Search data test program and shows what it printed.

| Key | Action |
|-----|--------|
| enter, space, r | run Stride Search |
| mouse click on the button | run Stride Search |
| ↑/↓, pgup/pgdown | scroll the output |
| ? | toggle this help |
| q, ctrl+c | quit (stops a running program) |

Output is only ever appended. Standard error is captured but hidden unless
` + "`SSLAUNCH_SHOW_STDERR=true`" + ` is set.
`

// renderHelp renders the help panel for the given width, falling back to the
// raw markdown when rendering fails.
func renderHelp(width int) string {
	if width < 20 {
		width = 20
	}
	// Auto style would query the terminal while bubbletea owns it.
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil || out == "" {
		return helpMarkdown
	}
	return out
}
