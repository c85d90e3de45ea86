package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/zhubert/tutor/internal/api"
	"github.com/zhubert/tutor/internal/keys"
)

// SidebarSearchCharLimit caps the session filter query
const SidebarSearchCharLimit = 64

// ActiveSessionMarker flags the session whose transcript is shown
const ActiveSessionMarker = "●"

// Sidebar represents the left panel with the chat session list
type Sidebar struct {
	sessions     []api.SessionSummary // newest first
	filtered     []api.SessionSummary // sessions matching the search query; nil when not filtering
	activeID     string
	followActive bool // move the cursor to activeID once it is listed
	selectedIdx  int
	width        int
	height       int
	focused      bool
	scrollOffset int

	searchMode  bool
	searchInput textinput.Model
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = SidebarSearchCharLimit

	return &Sidebar{searchInput: ti}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetSessions replaces the session list. The cursor moves to the active
// session whenever it changes (once that session is listed) and otherwise
// stays on the session it was on.
func (s *Sidebar) SetSessions(sessions []api.SessionSummary, activeID string) {
	var selectedID string
	if sel, ok := s.SelectedSession(); ok {
		selectedID = sel.ID
	}
	if activeID != s.activeID {
		s.followActive = activeID != ""
	}

	s.sessions = sessions
	s.activeID = activeID
	if s.searchMode {
		s.applyFilter(s.searchInput.Value())
	}

	switch {
	case s.followActive && s.SelectSession(activeID):
		s.followActive = false
	case selectedID != "":
		s.SelectSession(selectedID)
	}
	s.clampSelection()
}

// Sessions returns the full list as displayed, newest first
func (s *Sidebar) Sessions() []api.SessionSummary {
	return s.sessions
}

// getDisplaySessions returns the sessions currently listed
func (s *Sidebar) getDisplaySessions() []api.SessionSummary {
	if s.filtered != nil {
		return s.filtered
	}
	return s.sessions
}

// SelectedSession returns the session under the cursor
func (s *Sidebar) SelectedSession() (api.SessionSummary, bool) {
	display := s.getDisplaySessions()
	if s.selectedIdx < 0 || s.selectedIdx >= len(display) {
		return api.SessionSummary{}, false
	}
	return display[s.selectedIdx], true
}

// SelectSession moves the cursor to the session with the given id
func (s *Sidebar) SelectSession(id string) bool {
	for i, sess := range s.getDisplaySessions() {
		if sess.ID == id {
			s.selectedIdx = i
			return true
		}
	}
	return false
}

func (s *Sidebar) clampSelection() {
	n := len(s.getDisplaySessions())
	if s.selectedIdx >= n {
		s.selectedIdx = n - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
}

// EnterSearchMode starts filtering sessions by title
func (s *Sidebar) EnterSearchMode() tea.Cmd {
	s.searchMode = true
	s.searchInput.SetValue("")
	s.applyFilter("")
	return s.searchInput.Focus()
}

// ExitSearchMode stops filtering and shows every session again
func (s *Sidebar) ExitSearchMode() {
	var selectedID string
	if sel, ok := s.SelectedSession(); ok {
		selectedID = sel.ID
	}
	s.searchMode = false
	s.searchInput.Blur()
	s.searchInput.SetValue("")
	s.filtered = nil
	if selectedID != "" {
		s.SelectSession(selectedID)
	}
	s.clampSelection()
}

// IsSearchMode reports whether the filter input is open
func (s *Sidebar) IsSearchMode() bool {
	return s.searchMode
}

// GetSearchQuery returns the current filter text
func (s *Sidebar) GetSearchQuery() string {
	return s.searchInput.Value()
}

func (s *Sidebar) applyFilter(query string) {
	if query == "" {
		s.filtered = nil
		return
	}

	query = strings.ToLower(query)
	s.filtered = []api.SessionSummary{}
	for _, sess := range s.sessions {
		if strings.Contains(strings.ToLower(sess.DisplayTitle()), query) {
			s.filtered = append(s.filtered, sess)
		}
	}
	s.clampSelection()
	s.scrollOffset = 0
}

// Update handles messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.focused {
		return s, nil
	}

	if s.searchMode {
		switch keyMsg.String() {
		case keys.Escape:
			s.ExitSearchMode()
			return s, nil
		case keys.Up, keys.Down:
			s.move(keyMsg.String())
			return s, nil
		default:
			var cmd tea.Cmd
			s.searchInput, cmd = s.searchInput.Update(msg)
			s.applyFilter(s.searchInput.Value())
			return s, cmd
		}
	}

	s.move(keyMsg.String())
	return s, nil
}

func (s *Sidebar) move(key string) {
	n := len(s.getDisplaySessions())
	switch key {
	case keys.Up, "k":
		if s.selectedIdx > 0 {
			s.selectedIdx--
		}
	case keys.Down, "j":
		if s.selectedIdx < n-1 {
			s.selectedIdx++
		}
	case keys.Home:
		s.selectedIdx = 0
	case keys.End:
		s.selectedIdx = max(n-1, 0)
	}
}

// renderSessionLine renders one session, truncated to width cells
func (s *Sidebar) renderSessionLine(sess api.SessionSummary, selected bool, width int) string {
	marker := "  "
	if sess.ID == s.activeID {
		marker = ActiveSessionMarker + " "
	}
	prefix := "  "
	if selected {
		prefix = "> "
	}

	// Item styles pad one cell on each side
	avail := width - 2 - runewidth.StringWidth(prefix+marker)
	title := runewidth.Truncate(sess.DisplayTitle(), max(avail, 1), "…")

	if selected {
		return SidebarSelectedStyle.Width(width).Render(prefix + marker + title)
	}
	if sess.ID == s.activeID {
		return SidebarItemStyle.Width(width).Render(prefix + SidebarActiveStyle.Render(marker) + title)
	}
	return SidebarItemStyle.Width(width).Render(prefix + marker + title)
}

// View renders the sidebar
func (s *Sidebar) View() string {
	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := InnerWidth(s.width)
	innerHeight := InnerHeight(s.height)

	title := PanelTitleStyle.Render("Chats")
	innerHeight -= TitleHeight

	var searchLine string
	if s.searchMode {
		searchStyle := lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
		s.searchInput.SetWidth(innerWidth - 3)
		searchLine = searchStyle.Render("/") + " " + s.searchInput.View()
		innerHeight--
	}

	display := s.getDisplaySessions()

	var content string
	if len(display) == 0 {
		if s.searchMode && s.searchInput.Value() != "" {
			content = SidebarEmptyStyle.Render("No matches.")
		} else {
			content = SidebarEmptyStyle.Render("No chats yet. Press n to start one.")
		}
	} else {
		// Keep the cursor on screen
		visible := max(innerHeight, 1)
		if s.selectedIdx < s.scrollOffset {
			s.scrollOffset = s.selectedIdx
		} else if s.selectedIdx >= s.scrollOffset+visible {
			s.scrollOffset = s.selectedIdx - visible + 1
		}
		if maxScroll := max(len(display)-visible, 0); s.scrollOffset > maxScroll {
			s.scrollOffset = maxScroll
		}

		end := min(s.scrollOffset+visible, len(display))
		lines := make([]string, 0, end-s.scrollOffset)
		for i := s.scrollOffset; i < end; i++ {
			lines = append(lines, s.renderSessionLine(display[i], s.focused && i == s.selectedIdx, innerWidth))
		}
		content = strings.Join(lines, "\n")
	}

	parts := []string{title}
	if searchLine != "" {
		parts = append(parts, searchLine)
	}
	parts = append(parts, content)

	return style.
		Width(s.width).
		Height(s.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
