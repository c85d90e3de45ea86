package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/tutor/internal/state"
)

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the whole screen. Exactly one main view is drawn,
// chosen by the current mode.
func (m *Model) RenderToString() string {
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	var body string
	if m.showLogs {
		body = m.logViewer.View()
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.mainView())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		body,
		m.footer.View(),
	)
}

func (m *Model) mainView() string {
	switch m.state.Mode {
	case state.ModeQuiz:
		return m.quiz.View()
	case state.ModeReview:
		return m.review.View()
	default:
		return m.chat.View()
	}
}
