package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/tutor/internal/state"
)

// DefaultFlashDuration is how long a flash message stays in the footer
const DefaultFlashDuration = 5 * time.Second

// FlashType selects the icon and color of a flash message
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

func (t FlashType) icon() string {
	switch t {
	case FlashWarning:
		return "⚠"
	case FlashInfo:
		return "ℹ"
	case FlashSuccess:
		return "✓"
	default:
		return "✕"
	}
}

func (t FlashType) style() lipgloss.Style {
	switch t {
	case FlashWarning:
		return FlashWarningStyle
	case FlashInfo:
		return FlashInfoStyle
	case FlashSuccess:
		return FlashSuccessStyle
	default:
		return FlashErrorStyle
	}
}

// FlashMessage is a transient footer message
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (m *FlashMessage) IsExpired() bool {
	return time.Since(m.CreatedAt) > m.Duration
}

// FlashTickMsg is sent periodically while a flash message is showing
type FlashTickMsg time.Time

// FlashTick returns a command that checks flash expiry after a second
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FooterContext is what the footer needs to pick its bindings
type FooterContext struct {
	Mode           state.Mode
	SidebarFocused bool
	HasSession     bool
	Quiz           state.QuizState
	Review         state.ReviewState
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	bindings     []KeyBinding
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: BindingsFor(FooterContext{SidebarFocused: true}),
	}
}

// SetContext recomputes the bindings for the current state
func (f *Footer) SetContext(ctx FooterContext) {
	f.bindings = BindingsFor(ctx)
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes any flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// FlashKind returns the type of the showing flash message.
func (f *Footer) FlashKind() (FlashType, bool) {
	if f.flashMessage == nil {
		return 0, false
	}
	return f.flashMessage.Type, true
}

// ClearIfExpired removes an expired flash message and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// BindingsFor returns the key bindings relevant in ctx
func BindingsFor(ctx FooterContext) []KeyBinding {
	if ctx.SidebarFocused {
		b := []KeyBinding{
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "n", Desc: "new chat"},
		}
		if ctx.HasSession {
			b = append(b, KeyBinding{Key: "d", Desc: "delete"})
		}
		return append(b,
			KeyBinding{Key: "tab", Desc: "switch pane"},
			KeyBinding{Key: "?", Desc: "help"},
			KeyBinding{Key: "q", Desc: "quit"},
		)
	}

	var b []KeyBinding
	switch ctx.Mode {
	case state.ModeChat:
		b = []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "shift+enter", Desc: "newline"},
			{Key: "ctrl+y", Desc: "copy reply"},
			{Key: "pgup/dn", Desc: "scroll"},
		}
	case state.ModeQuiz:
		b = quizBindings(ctx.Quiz)
	case state.ModeReview:
		b = reviewBindings(ctx.Review)
	}
	return append(b,
		KeyBinding{Key: "f1-f3", Desc: "mode"},
		KeyBinding{Key: "tab", Desc: "switch pane"},
	)
}

func quizBindings(q state.QuizState) []KeyBinding {
	switch q.Phase {
	case state.QuizIdle:
		return []KeyBinding{{Key: "g", Desc: "start quiz"}}
	case state.QuizFailed:
		return []KeyBinding{{Key: "r", Desc: "retry"}}
	case state.QuizCompleted:
		return []KeyBinding{{Key: "g", Desc: "next quiz"}}
	case state.QuizActive:
		if q.ChoicesVisible() {
			return []KeyBinding{{Key: "1-4", Desc: "answer"}}
		}
		if q.Answered {
			return []KeyBinding{{Key: "enter", Desc: "next question"}}
		}
	}
	return nil
}

func reviewBindings(r state.ReviewState) []KeyBinding {
	if r.Page == state.ReviewDetails {
		return []KeyBinding{
			{Key: "esc", Desc: "back"},
			{Key: "pgup/dn", Desc: "scroll"},
		}
	}
	b := []KeyBinding{{Key: "r", Desc: "refresh"}}
	if len(r.History) > 0 {
		b = append([]KeyBinding{
			{Key: "↑/↓", Desc: "select"},
			{Key: "enter", Desc: "details"},
		}, b...)
	}
	return b
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		style := f.flashMessage.Type.style()
		content := style.Render(f.flashMessage.Type.icon() + " " + f.flashMessage.Text)
		return FooterStyle.Width(f.width).Render(content)
	}

	parts := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}
	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
