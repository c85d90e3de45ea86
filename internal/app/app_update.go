package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tutor/internal/keys"
	"github.com/zhubert/tutor/internal/logger"
	"github.com/zhubert/tutor/internal/state"
	"github.com/zhubert/tutor/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Key not handled by handleKeyPress, let it fall through to focused panel

	case state.Action:
		return m, m.dispatch(msg)

	case helpShortcutTriggeredMsg:
		return m.handleHelpShortcutTrigger(msg.Key)

	case copyResultMsg:
		if msg.err != nil {
			logger.WithComponent("app").Warn("copy failed", "error", msg.err)
			return m, m.ShowFlashError("Failed to copy to clipboard")
		}
		return m, m.ShowFlashSuccess("Copied last reply")

	case ui.StopwatchTickMsg:
		return m, m.handleStopwatchTick(msg)

	case ui.FlashTickMsg:
		// Keep ticking until the flash expires
		if m.footer.ClearIfExpired() {
			return m, nil
		}
		if m.footer.HasFlash() {
			return m, flashTick()
		}
		return m, nil
	}

	// Update modal
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	if m.showLogs {
		lv, cmd := m.logViewer.Update(msg)
		m.logViewer = lv
		return m, cmd
	}

	// Update focused panel for other messages
	cmds = append(cmds, m.updateFocusedPanel(msg))
	return m, tea.Batch(cmds...)
}

// updateFocusedPanel forwards msg to the sidebar or the current main view.
func (m *Model) updateFocusedPanel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == FocusSidebar {
		m.sidebar, cmd = m.sidebar.Update(msg)
		return cmd
	}
	switch m.state.Mode {
	case state.ModeQuiz:
		m.quiz, cmd = m.quiz.Update(msg)
	case state.ModeReview:
		m.review, cmd = m.review.Update(msg)
	default:
		m.chat, cmd = m.chat.Update(msg)
	}
	return cmd
}

// handleStopwatchTick advances every spinner and keeps the tick chain alive
// while something is still loading.
func (m *Model) handleStopwatchTick(msg ui.StopwatchTickMsg) tea.Cmd {
	m.chat, _ = m.chat.Update(msg)
	m.quiz, _ = m.quiz.Update(msg)
	if !m.animating() {
		m.ticking = false
		return nil
	}
	return stopwatchTick()
}

// handleKeyPress handles all keyboard input.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should fall through
// to the focused panel for handling.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	logger.WithComponent("app").Debug("key press", "key", key, "focus", m.focus.String(), "modalVisible", m.modal.IsVisible())

	// Handle ctrl+c specially - always quits
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	// Handle modal first if visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if m.showLogs {
		return m.handleLogViewerKey(msg)
	}

	if key == keys.Escape {
		if result, cmd, handled := m.handleEscapeKey(); handled {
			return result, cmd
		}
	}

	if m.isTyping() {
		if result, cmd, handled := m.handleChatInputKeys(key); handled {
			return result, cmd
		}
	}

	// Try executing from shortcut registry
	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	if key == keys.Enter {
		return m.handleEnterKey()
	}

	if m.focus == FocusMain && m.state.Mode == state.ModeQuiz {
		if choice := keys.Choice(key); choice > 0 {
			return m, m.dispatch(state.AnswerQuestion{Choice: choice})
		}
	}

	// Key not handled - return nil to signal it should fall through to focused panel
	return nil, nil
}

// handleEscapeKey leaves sidebar search or the review details page.
func (m *Model) handleEscapeKey() (tea.Model, tea.Cmd, bool) {
	if m.sidebar.IsSearchMode() {
		m.sidebar.ExitSearchMode()
		return m, nil, true
	}
	if m.state.Mode == state.ModeReview && m.state.Review.Page == state.ReviewDetails {
		return m, m.dispatch(state.BackToSummary{}), true
	}
	if m.focus == FocusMain {
		m.setFocus(FocusSidebar)
		return m, nil, true
	}
	return m, nil, false
}

// handleChatInputKeys handles the keys the chat input does not type.
func (m *Model) handleChatInputKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case keys.Enter:
		result, cmd := m.sendMessage()
		return result, cmd, true
	case keys.ShiftEnter:
		m.chat.InsertNewline()
		return m, nil, true
	}
	return m, nil, false
}

// sendMessage posts the chat input. The input is kept while the send is
// refused, for example when a reply is still pending.
func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	text := m.chat.GetInput()
	before := len(m.state.Messages)
	cmd := m.dispatch(state.SendMessage{Text: text})
	if len(m.state.Messages) > before {
		m.chat.ClearInput()
	}
	return m, cmd
}

// handleEnterKey handles the enter key press outside the chat input.
func (m *Model) handleEnterKey() (tea.Model, tea.Cmd) {
	if m.focus == FocusSidebar {
		if m.sidebar.IsSearchMode() {
			m.sidebar.ExitSearchMode()
		}
		sess, ok := m.sidebar.SelectedSession()
		if !ok {
			return m, nil
		}
		logger.WithSession(sess.ID).Debug("opening session")
		cmd := m.dispatch(state.OpenSession{ID: sess.ID})
		m.setFocus(FocusMain)
		return m, cmd
	}

	switch m.state.Mode {
	case state.ModeQuiz:
		return m, m.dispatch(state.NextQuestion{})
	case state.ModeReview:
		if m.state.Review.Page == state.ReviewSummary {
			if i := m.review.SelectedIndex(); i >= 0 {
				return m, m.dispatch(state.ShowDetails{Index: i})
			}
		}
	}
	return m, nil
}

// switchMode shows another main view and focuses it.
func (m *Model) switchMode(mode state.Mode) tea.Cmd {
	if m.sidebar.IsSearchMode() {
		m.sidebar.ExitSearchMode()
	}
	cmd := m.dispatch(state.SwitchMode{Mode: mode})
	m.setFocus(FocusMain)
	return cmd
}

// handleLogViewerKey handles keys while the log viewer is open.
func (m *Model) handleLogViewerKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape, "q", "ctrl+l":
		m.showLogs = false
		return m, nil
	}
	lv, cmd := m.logViewer.Update(msg)
	m.logViewer = lv
	return m, cmd
}
