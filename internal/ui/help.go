package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"
)

const helpMarkdown = `# artex

Step through the entries of a directory. The book shows the selected name.

| Key | Action |
| --- | --- |
| → / l / n | next entry |
| ← / h / p | previous entry |
| / | find an entry by name |
| ? | toggle this help |
| q / ctrl+c | quit |

Entries wrap around at both ends. Changes in the directory are picked up
while browsing.
`

func newRenderer(width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(styles.TokyoNightStyle)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	} else {
		opts = append(opts, glamour.WithWordWrap(0))
	}
	return glamour.NewTermRenderer(opts...)
}

// renderHelp renders the help text for a box of the given width. It falls
// back to the raw markdown if rendering fails.
func renderHelp(width int) string {
	r, err := newRenderer(width)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.Trim(out, "\n")
}
