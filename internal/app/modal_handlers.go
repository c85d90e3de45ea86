package app

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tutor/internal/config"
	"github.com/zhubert/tutor/internal/errors"
	"github.com/zhubert/tutor/internal/keys"
	"github.com/zhubert/tutor/internal/logger"
	"github.com/zhubert/tutor/internal/state"
	"github.com/zhubert/tutor/internal/ui"
	"github.com/zhubert/tutor/internal/ui/modals"
)

// helpShortcutTriggeredMsg runs a shortcut picked in the help modal.
type helpShortcutTriggeredMsg struct {
	Key string
}

// copyResultMsg reports the outcome of a clipboard write.
type copyResultMsg struct {
	err error
}

// handleModalKey routes modal key events to the appropriate handler based on modal state type.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.ConfirmDeleteState:
		return m.handleConfirmDeleteModal(key, msg, s)
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleConfirmDeleteModal handles key events for the Confirm Delete modal.
// Cancelling has no side effects.
func (m *Model) handleConfirmDeleteModal(key string, msg tea.KeyPressMsg, s *modals.ConfirmDeleteState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		m.modal.Hide()
		if !s.Confirmed() {
			return m, nil
		}
		logger.WithSession(s.SessionID).Info("deleting session")
		return m, m.dispatch(state.DeleteConfirmed{ID: s.SessionID})
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

func (m *Model) showSettingsModal() {
	names := ui.ThemeNames()
	themes := make([]string, len(names))
	display := make([]string, len(names))
	for i, name := range names {
		themes[i] = string(name)
		display[i] = ui.GetTheme(name).Name
	}

	timeout := int(m.config.RequestTimeout() / time.Second)
	m.modal.Show(modals.NewSettingsState(
		themes, display, string(ui.CurrentThemeName()),
		m.config.GetAPIBase(), m.config.GetNotificationsEnabled(), timeout,
		func(base string) error {
			return config.New().SetAPIBase(base)
		},
	))
}

// handleSettingsModal handles key events for the Settings modal.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, s *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		return m.applySettings(s)
	}
	// Forward other keys to modal for text input handling
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

func (m *Model) applySettings(s *modals.SettingsState) (tea.Model, tea.Cmd) {
	if err := s.Validate(); err != nil {
		m.modal.SetError(err.Error())
		return m, nil
	}

	if s.APIBaseChanged() {
		if err := m.config.SetAPIBase(s.GetAPIBase()); err != nil {
			m.modal.SetError(errors.Summary(err))
			return m, nil
		}
	}
	m.config.SetNotificationsEnabled(s.GetNotificationsEnabled())
	m.config.SetRequestTimeout(s.GetTimeoutSeconds())

	if s.ThemeChanged() {
		theme := s.GetSelectedTheme()
		ui.SetThemeByName(theme)
		m.config.SetTheme(theme)
		m.syncViews()
	}

	if err := m.config.Save(); err != nil {
		logger.WithComponent("app").Error("failed to save settings", "error", err)
		m.modal.SetError("Failed to save: " + errors.Summary(err))
		return m, nil
	}
	m.modal.Hide()

	// Later requests use the new backend address and timeout
	m.client = newClient(m.config)
	if s.APIBaseChanged() {
		logger.WithComponent("app").Info("backend changed", "api", m.config.GetAPIBase())
		return m, tea.Batch(m.ShowFlashSuccess("Settings saved"), m.dispatch(state.NewChat{}))
	}
	return m, m.ShowFlashSuccess("Settings saved")
}

// handleHelpModal handles key events for the help modal.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, s *modals.HelpState) (tea.Model, tea.Cmd) {
	// While filtering, forward all keys to the list (Esc cancels filter, Enter applies)
	if s.IsFiltering() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	switch key {
	case keys.Escape, "?", "q":
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		shortcut, ok := s.SelectedShortcut()
		if !ok {
			return m, nil
		}
		m.modal.Hide()
		return m, func() tea.Msg {
			return helpShortcutTriggeredMsg{Key: shortcut.Key}
		}
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleHelpShortcutTrigger runs the shortcut picked in the help modal.
func (m *Model) handleHelpShortcutTrigger(display string) (tea.Model, tea.Cmd) {
	key, ok := shortcutForDisplayKey(display)
	if !ok {
		// Display-only entries describe context keys and have nothing to run
		return m, nil
	}
	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}
	return m, m.ShowFlashInfo("Not available here: " + strings.TrimSpace(display))
}
