package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/tutor/internal/keys"
)

// ConfirmDeleteState asks before a chat session is deleted on the backend.
type ConfirmDeleteState struct {
	SessionID     string
	SessionTitle  string
	Options       []string
	SelectedIndex int
}

const deleteOptionIndex = 1

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "Delete this chat?" }

func (s *ConfirmDeleteState) Help() string {
	return "up/down to select, Enter to confirm, y/n, Esc to cancel"
}

func (s *ConfirmDeleteState) Render() string {
	title := pal.Title.Render(s.Title())

	sessionLabel := lipgloss.NewStyle().
		Foreground(pal.Heading).
		Bold(true).
		MarginBottom(1).
		Render(truncate(s.SessionTitle, InputWidth))

	message := lipgloss.NewStyle().
		Foreground(pal.Text).
		MarginBottom(1).
		Render("The conversation will be removed from the backend.")

	options := renderChoices(s.Options, s.SelectedIndex)
	help := pal.Help.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, sessionLabel, message, options, help)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		case "y":
			s.SelectedIndex = deleteOptionIndex
		case "n":
			s.SelectedIndex = 0
		}
	}
	return s, nil
}

// Confirmed reports whether the delete option is selected.
func (s *ConfirmDeleteState) Confirmed() bool {
	return s.SelectedIndex == deleteOptionIndex
}

// NewConfirmDeleteState creates a new ConfirmDeleteState with Cancel selected.
func NewConfirmDeleteState(sessionID, sessionTitle string) *ConfirmDeleteState {
	return &ConfirmDeleteState{
		SessionID:     sessionID,
		SessionTitle:  sessionTitle,
		Options:       []string{"Cancel", "Delete"},
		SelectedIndex: 0,
	}
}
