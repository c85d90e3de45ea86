package ui

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/tutor/internal/keys"
	"github.com/zhubert/tutor/internal/logger"
)

// LogViewer shows the debug log in place of the main panel. It is opened
// with ctrl+l and reads the file each time it is refreshed.
type LogViewer struct {
	viewport   viewport.Model
	path       string
	width      int
	height     int
	followTail bool
}

// NewLogViewer creates a log viewer for the file at path.
func NewLogViewer(path string) *LogViewer {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	vp.SoftWrap = true

	lv := &LogViewer{viewport: vp, path: path, followTail: true}
	lv.Refresh()
	return lv
}

// LogPath returns the log file the viewer should open: the active log,
// or the default location before the logger has opened one.
func LogPath() string {
	if p := logger.Path(); p != "" {
		return p
	}
	return logger.DefaultLogPath
}

// SetSize sets the viewer dimensions
func (lv *LogViewer) SetSize(width, height int) {
	lv.width = width
	lv.height = height

	// One line is taken by the navigation bar
	lv.viewport.SetWidth(InnerWidth(width))
	lv.viewport.SetHeight(max(InnerHeight(height)-1, 1))
	if lv.followTail {
		lv.viewport.GotoBottom()
	}
}

// Refresh reloads the log file.
func (lv *LogViewer) Refresh() {
	content, err := os.ReadFile(lv.path)
	switch {
	case os.IsNotExist(err):
		lv.viewport.SetContent(StatusMutedStyle.Render("No log file yet at " + lv.path))
		return
	case err != nil:
		lv.viewport.SetContent(StatusErrorStyle.Render(fmt.Sprintf("Error reading log file: %v", err)))
		return
	}

	lv.viewport.SetContent(highlightLogContent(string(content)))
	if lv.followTail {
		lv.viewport.GotoBottom()
	} else {
		lv.viewport.GotoTop()
	}
}

// FollowTail reports whether the viewer sticks to the end of the file.
func (lv *LogViewer) FollowTail() bool {
	return lv.followTail
}

// ToggleFollowTail toggles the follow tail mode.
func (lv *LogViewer) ToggleFollowTail() {
	lv.followTail = !lv.followTail
	if lv.followTail {
		lv.viewport.GotoBottom()
	}
}

// Update handles the viewer's own keys: f toggles follow, r refreshes,
// everything else scrolls.
func (lv *LogViewer) Update(msg tea.Msg) (*LogViewer, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "f":
			lv.ToggleFollowTail()
			return lv, nil
		case "r":
			lv.Refresh()
			return lv, nil
		case keys.Up, keys.Down, keys.PgUp, keys.PgDown, keys.Home, keys.End, "ctrl+u", "ctrl+d":
		default:
			return lv, nil
		}
	}

	var cmd tea.Cmd
	lv.viewport, cmd = lv.viewport.Update(msg)
	return lv, cmd
}

// highlightLogContent applies highlighting to every line of a log.
func highlightLogContent(content string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(strings.TrimRight(content, "\n"), "\n") {
		sb.WriteString(highlightLogLine(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

type logLevelStyle struct {
	field string
	style lipgloss.Style
}

// logLevelStyles maps slog text-handler level fields to their colours.
func logLevelStyles() []logLevelStyle {
	return []logLevelStyle{
		{"level=ERROR", lipgloss.NewStyle().Foreground(ColorError).Bold(true)},
		{"level=WARN", lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)},
		{"level=INFO", lipgloss.NewStyle().Foreground(ColorInfo)},
		{"level=DEBUG", lipgloss.NewStyle().Foreground(ColorTextMuted)},
	}
}

// highlightLogLine colours the level and the quoted message of one slog line.
func highlightLogLine(line string) string {
	if line == "" {
		return line
	}

	for _, ls := range logLevelStyles() {
		if strings.Contains(line, ls.field) {
			line = strings.Replace(line, ls.field, ls.style.Render(ls.field), 1)
			break
		}
	}

	idx := strings.Index(line, "msg=\"")
	if idx < 0 {
		return line
	}
	rest := line[idx+5:]
	end := strings.Index(rest, "\"")
	if end < 0 {
		return line
	}
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary)
	valueStyle := lipgloss.NewStyle().Foreground(ColorText)
	return line[:idx] + keyStyle.Render("msg=") + valueStyle.Render("\""+rest[:end+1]) + rest[end+1:]
}

// renderNavBar renders "Debug Log  path  [Follow]  [r: refresh]  [esc: close]".
func (lv *LogViewer) renderNavBar(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)

	follow := mutedStyle.Render("[f: follow]")
	if lv.followTail {
		follow = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Render("[Follow]")
	}
	hints := " " + follow + " " + mutedStyle.Render("[r: refresh] [esc: close]")

	title := titleStyle.Render("Debug Log") + " "
	room := max(width-lipgloss.Width(title)-lipgloss.Width(hints), 0)
	path := mutedStyle.Render(TruncatePathLeft(lv.path, room))

	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(title + path + hints)
}

// TruncatePathLeft shortens a path from the left so its end stays visible.
func TruncatePathLeft(path string, width int) string {
	runes := []rune(path)
	if len(runes) <= width {
		return path
	}
	if width <= 1 {
		return ""
	}
	return "…" + string(runes[len(runes)-width+1:])
}

// View renders the log viewer in a focused panel
func (lv *LogViewer) View() string {
	navBar := lv.renderNavBar(InnerWidth(lv.width))
	content := lipgloss.JoinVertical(lipgloss.Left, navBar, lv.viewport.View())
	return PanelFocusedStyle.Width(lv.width).Height(lv.height).Render(content)
}
