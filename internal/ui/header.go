package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"github.com/zhubert/tutor/internal/state"
)

// AppTitle is shown at the left of the header.
const AppTitle = "tutor"

// tabLabels are the header tab captions for each mode.
var tabLabels = map[state.Mode]string{
	state.ModeChat:   "💬 Chat",
	state.ModeQuiz:   "📝 Quiz",
	state.ModeReview: "📊 Review",
}

// TabLabel returns the header caption for a mode.
func TabLabel(m state.Mode) string {
	return tabLabels[m]
}

// Header represents the top header bar
type Header struct {
	width        int
	mode         state.Mode
	sessionTitle string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetMode sets which tab is highlighted
func (h *Header) SetMode(mode state.Mode) {
	h.mode = mode
}

// SetSessionTitle sets the active chat title shown on the right
func (h *Header) SetSessionTitle(title string) {
	h.sessionTitle = title
}

// headerSegment is a run of header text sharing one text style.
type headerSegment struct {
	text   string
	bold   bool
	active bool
	muted  bool
}

// View renders the header
func (h *Header) View() string {
	segments := []headerSegment{{text: " " + AppTitle + "  ", bold: true}}
	for _, m := range state.Modes {
		label := " " + tabLabels[m] + " "
		segments = append(segments, headerSegment{text: label, active: m == h.mode, bold: m == h.mode})
	}

	var right string
	if h.sessionTitle != "" {
		right = runewidth.Truncate(h.sessionTitle, SessionTitleMaxWidth, "…") + " "
	}

	used := 0
	for _, s := range segments {
		used += uniseg.StringWidth(s.text)
	}
	rightWidth := uniseg.StringWidth(right)

	// Drop the session title before letting the tabs overflow
	if used+rightWidth > h.width {
		right = ""
		rightWidth = 0
	}
	if pad := h.width - used - rightWidth; pad > 0 {
		segments = append(segments, headerSegment{text: strings.Repeat(" ", pad)})
	}
	if right != "" {
		segments = append(segments, headerSegment{text: right, muted: h.mode != state.ModeChat})
	}

	return renderGradient(segments, max(h.width, used))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the segments over a theme-aware gradient background
// spanning width cells. Wide graphemes take the color of their first cell.
func renderGradient(segments []headerSegment, width int) string {
	if width <= 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	var result strings.Builder
	col := 0
	for _, seg := range segments {
		g := uniseg.NewGraphemes(seg.text)
		for g.Next() {
			t := float64(col) / float64(width)

			cr := int(float64(startR)*(1-t) + float64(endR)*t)
			cg := int(float64(startG)*(1-t) + float64(endG)*t)
			cb := int(float64(startB)*(1-t) + float64(endB)*t)
			bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

			style := lipgloss.NewStyle().
				Background(bgColor).
				Bold(seg.bold).
				Underline(seg.active && g.Str() != " ")
			if seg.muted {
				style = style.Foreground(mutedColor)
			} else {
				style = style.Foreground(textColor)
			}

			result.WriteString(style.Render(g.Str()))
			col += g.Width()
		}
	}

	return result.String()
}
