package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/tutor/internal/ui/modals"
)

// ModalState is the state of whichever modal is open.
type ModalState = modals.ModalState

// modalChrome is the horizontal space taken by the modal border and padding.
const modalChrome = 6

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message shown under the modal content
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on a screen of the given size
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	width := modals.DefaultWidth
	if p, ok := m.State.(modals.Widener); ok {
		width = p.PreferredWidth()
	}
	width = min(width, max(screenWidth-2, MinTerminalWidth/2))

	if s, ok := m.State.(modals.Resizer); ok {
		s.SetSize(width-modalChrome, screenHeight-modalChrome)
	}

	content := m.State.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		ModalStyle.Width(width).Render(content),
	)
}

// RefreshModalStyles pushes the current theme into the modals package.
func RefreshModalStyles() {
	modals.UsePalette(modals.Palette{
		Title:    ModalTitleStyle,
		Help:     ModalHelpStyle,
		Item:     SidebarItemStyle,
		Selected: SidebarSelectedStyle,
		Accent:   ColorPrimary,
		Heading:  ColorSecondary,
		Text:     ColorText,
		Muted:    ColorTextMuted,
		Inverse:  ColorTextInverse,
		Warning:  ColorWarning,
	})
}
