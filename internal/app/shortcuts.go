package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tutor/internal/clipboard"
	"github.com/zhubert/tutor/internal/keys"
	"github.com/zhubert/tutor/internal/logger"
	"github.com/zhubert/tutor/internal/state"
	"github.com/zhubert/tutor/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key              string                              // The key binding (e.g., "n", "ctrl+y")
	DisplayKey       string                              // Display name in help (e.g., "F1"); defaults to Key
	Description      string                              // Human-readable description
	Category         string                              // Section for help modal grouping
	RequiresSidebar  bool                                // Sidebar must be focused
	RequiresSession  bool                                // A session must be selected in the sidebar
	AllowWhileTyping bool                                // Fires even when keys go to the chat input
	Handler          func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition        func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation = "Navigation"
	CategorySessions   = "Chats"
	CategoryChat       = "Chat"
	CategoryQuiz       = "Quiz"
	CategoryReview     = "Quiz History"
	CategoryGeneral    = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategorySessions,
	CategoryChat,
	CategoryQuiz,
	CategoryReview,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of all keyboard shortcuts.
// Entries appear in the help modal and can be run from it. Several entries
// may share a key; the first whose guards pass wins.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:              keys.Tab,
		DisplayKey:       "Tab",
		Description:      "Switch between sidebar and main view",
		Category:         CategoryNavigation,
		AllowWhileTyping: true,
		Handler:          shortcutToggleFocus,
	},
	{
		Key:              keys.ShiftTab,
		DisplayKey:       "Shift+Tab",
		Description:      "Cycle chat, quiz and history",
		Category:         CategoryNavigation,
		AllowWhileTyping: true,
		Handler:          shortcutCycleMode,
	},
	{
		Key:              keys.F1,
		DisplayKey:       "F1",
		Description:      "Chat",
		Category:         CategoryNavigation,
		AllowWhileTyping: true,
		Handler:          shortcutMode(state.ModeChat),
	},
	{
		Key:              keys.F2,
		DisplayKey:       "F2",
		Description:      "Quiz",
		Category:         CategoryNavigation,
		AllowWhileTyping: true,
		Handler:          shortcutMode(state.ModeQuiz),
	},
	{
		Key:              keys.F3,
		DisplayKey:       "F3",
		Description:      "Quiz history",
		Category:         CategoryNavigation,
		AllowWhileTyping: true,
		Handler:          shortcutMode(state.ModeReview),
	},
	{
		Key:             "/",
		Description:     "Search chats",
		Category:        CategoryNavigation,
		RequiresSidebar: true,
		Handler:         shortcutSearch,
		Condition:       func(m *Model) bool { return !m.sidebar.IsSearchMode() },
	},

	// Sessions
	{
		Key:             "n",
		Description:     "New chat",
		Category:        CategorySessions,
		RequiresSidebar: true,
		Handler:         shortcutNewChat,
	},
	{
		Key:              keys.CtrlN,
		DisplayKey:       "ctrl-n",
		Description:      "New chat from anywhere",
		Category:         CategorySessions,
		AllowWhileTyping: true,
		Handler:          shortcutNewChat,
	},
	{
		Key:             "d",
		Description:     "Delete selected chat",
		Category:        CategorySessions,
		RequiresSidebar: true,
		RequiresSession: true,
		Handler:         shortcutDeleteSession,
	},

	// Chat
	{
		Key:              keys.CtrlY,
		DisplayKey:       "ctrl-y",
		Description:      "Copy last tutor reply",
		Category:         CategoryChat,
		AllowWhileTyping: true,
		Handler:          shortcutCopyReply,
		Condition:        func(m *Model) bool { return m.state.Mode == state.ModeChat },
	},

	// Quiz
	{
		Key:         "g",
		Description: "Generate a new quiz",
		Category:    CategoryQuiz,
		Handler:     shortcutGenerateQuiz,
		Condition: func(m *Model) bool {
			p := m.state.Quiz.Phase
			return m.state.Mode == state.ModeQuiz && (p == state.QuizIdle || p == state.QuizCompleted)
		},
	},
	{
		Key:         "r",
		Description: "Retry quiz generation",
		Category:    CategoryQuiz,
		Handler:     shortcutGenerateQuiz,
		Condition: func(m *Model) bool {
			return m.state.Mode == state.ModeQuiz && m.state.Quiz.Phase == state.QuizFailed
		},
	},

	// Review
	{
		Key:         "r",
		Description: "Refresh quiz history",
		Category:    CategoryReview,
		Handler:     shortcutRefreshHistory,
		Condition:   func(m *Model) bool { return m.state.Mode == state.ModeReview },
	},

	// General
	// Note: "?" (help) is handled specially in ExecuteShortcut to avoid init cycle
	{
		Key:         ",",
		Description: "Settings",
		Category:    CategoryGeneral,
		Handler:     shortcutSettings,
	},
	{
		Key:              "ctrl+l",
		DisplayKey:       "ctrl-l",
		Description:      "View debug log",
		Category:         CategoryGeneral,
		AllowWhileTyping: true,
		Handler:          shortcutLogs,
	},
	{
		Key:         "q",
		Description: "Quit application",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
}

// helpShortcut is defined separately to avoid initialization cycle.
// It references ShortcutRegistry, so it can't be in the registry itself.
var helpShortcut = Shortcut{
	Key:         "?",
	Description: "Show this help",
	Category:    CategoryGeneral,
}

// DisplayOnlyShortcuts are shown in help but not executable from the help modal.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "↑/↓ or j/k", Description: "Navigate chats or quizzes", Category: CategoryNavigation},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll the main view", Category: CategoryNavigation},
	{DisplayKey: "Esc", Description: "Cancel search / Back", Category: CategoryNavigation},
	{DisplayKey: "Enter", Description: "Open selected chat", Category: CategorySessions},

	{DisplayKey: "Enter", Description: "Send message", Category: CategoryChat},
	{DisplayKey: "Shift+Enter", Description: "Insert newline", Category: CategoryChat},

	{DisplayKey: "1-4", Description: "Answer the question", Category: CategoryQuiz},
	{DisplayKey: "Enter", Description: "Next question", Category: CategoryQuiz},

	{DisplayKey: "Enter", Description: "Show quiz details", Category: CategoryReview},
	{DisplayKey: "Esc", Description: "Back to summary", Category: CategoryReview},
}

// guardsPass checks a shortcut's guards against the current model state.
func (m *Model) guardsPass(s Shortcut) bool {
	if m.isTyping() && !s.AllowWhileTyping {
		return false
	}
	if s.RequiresSidebar && m.focus != FocusSidebar {
		return false
	}
	if s.RequiresSession {
		if _, ok := m.sidebar.SelectedSession(); !ok {
			return false
		}
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if a shortcut was found and its guards passed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	log := logger.WithComponent("shortcuts")

	// Keys go to the search input while searching
	if m.sidebar.IsSearchMode() {
		return m, nil, false
	}

	if key == helpShortcut.Key {
		if m.isTyping() {
			return m, nil, false
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.guardsPass(s) {
			log.Debug("guard failed", "key", key, "description", s.Description)
			continue
		}
		log.Debug("executing", "key", key, "description", s.Description)
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// displayKey returns the label a shortcut is shown with.
func (s Shortcut) displayKey() string {
	if s.DisplayKey != "" {
		return s.DisplayKey
	}
	return s.Key
}

// getApplicableHelpSections generates help modal sections from shortcuts that
// are applicable in the current application state.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	for _, s := range registry {
		if !m.guardsPass(s) {
			continue
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  s.displayKey(),
			Desc: s.Description,
		})
	}
	categories[helpShortcut.Category] = append(categories[helpShortcut.Category], modals.HelpShortcut{
		Key:  helpShortcut.displayKey(),
		Desc: helpShortcut.Description,
	})

	for _, s := range displayOnly {
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  s.displayKey(),
			Desc: s.Description,
		})
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// shortcutForDisplayKey maps a help entry back to its registry key.
func shortcutForDisplayKey(display string) (string, bool) {
	if display == helpShortcut.displayKey() {
		return helpShortcut.Key, true
	}
	for _, s := range ShortcutRegistry {
		if s.displayKey() == display {
			return s.Key, true
		}
	}
	return "", false
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	m.toggleFocus()
	return m, nil
}

func shortcutCycleMode(m *Model) (tea.Model, tea.Cmd) {
	return m, m.switchMode(m.state.Mode.Next())
}

func shortcutMode(mode state.Mode) func(m *Model) (tea.Model, tea.Cmd) {
	return func(m *Model) (tea.Model, tea.Cmd) {
		return m, m.switchMode(mode)
	}
}

func shortcutSearch(m *Model) (tea.Model, tea.Cmd) {
	return m, m.sidebar.EnterSearchMode()
}

func shortcutNewChat(m *Model) (tea.Model, tea.Cmd) {
	cmd := m.dispatch(state.NewChat{})
	m.setFocus(FocusMain)
	return m, cmd
}

func shortcutDeleteSession(m *Model) (tea.Model, tea.Cmd) {
	sess, _ := m.sidebar.SelectedSession()
	m.modal.Show(modals.NewConfirmDeleteState(sess.ID, sess.DisplayTitle()))
	return m, nil
}

func shortcutCopyReply(m *Model) (tea.Model, tea.Cmd) {
	reply, ok := m.state.LastReply()
	if !ok {
		return m, m.ShowFlashWarning("No tutor reply to copy yet")
	}
	return m, func() tea.Msg {
		return copyResultMsg{err: clipboard.WriteText(reply)}
	}
}

func shortcutGenerateQuiz(m *Model) (tea.Model, tea.Cmd) {
	return m, m.dispatch(state.GenerateQuiz{})
}

func shortcutRefreshHistory(m *Model) (tea.Model, tea.Cmd) {
	return m, m.dispatch(state.SwitchMode{Mode: state.ModeReview})
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	m.showSettingsModal()
	return m, nil
}

func shortcutLogs(m *Model) (tea.Model, tea.Cmd) {
	m.showLogs = !m.showLogs
	if m.showLogs {
		m.logViewer.Refresh()
	}
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	sections := m.getApplicableHelpSections(ShortcutRegistry, DisplayOnlyShortcuts)
	m.modal.Show(modals.NewHelpState(sections))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}
