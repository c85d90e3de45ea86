package modals

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderChoices draws options one per line, marking the selected one.
func renderChoices(options []string, selected int) string {
	var b strings.Builder
	for i, opt := range options {
		if i == selected {
			b.WriteString(pal.Selected.Render("> " + opt))
		} else {
			b.WriteString(pal.Item.Render("  " + opt))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// truncate cuts s to width display cells. A width of zero or less leaves s alone.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
