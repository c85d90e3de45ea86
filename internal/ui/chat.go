package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/tutor/internal/api"
	"github.com/zhubert/tutor/internal/keys"
	"github.com/zhubert/tutor/internal/logger"
)

// Role labels shown above each chat bubble.
const (
	UserLabel      = "You"
	AssistantLabel = "Tutor"
)

// Chat is the main panel in chat mode: the transcript of the active session
// above a message input.
type Chat struct {
	viewport   viewport.Model
	input      textarea.Model
	width      int
	height     int
	focused    bool
	messages   []api.Message
	hasSession bool

	waiting       bool
	waitStartTime time.Time
	waitingVerb   string
	spinnerIdx    int
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Ask your tutor anything... (enter to send)"
	ti.CharLimit = MaxMessageLength
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	viewportHeight := InnerHeight(height - InputTotalHeight)
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(InnerWidth(width))
	c.viewport.SetHeight(viewportHeight)

	// Input width accounts for its own border and padding
	c.input.SetWidth(InnerWidth(width) - InputPaddingWidth)

	logger.WithComponent("ui").Debug("chat resized",
		"width", width, "height", height,
		"viewportWidth", c.viewport.Width(), "viewportHeight", c.viewport.Height())
	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused && c.hasSession {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetHasSession records whether a session is active. Without one the panel
// shows a placeholder and no input.
func (c *Chat) SetHasSession(has bool) {
	if has == c.hasSession {
		return
	}
	c.hasSession = has
	if !has {
		c.input.Blur()
	} else if c.focused {
		c.input.Focus()
	}
	c.updateContent()
}

// HasSession reports whether a session is active.
func (c *Chat) HasSession() bool {
	return c.hasSession
}

// SetMessages replaces the transcript.
func (c *Chat) SetMessages(messages []api.Message) {
	c.messages = messages
	c.updateContent()
}

// Messages returns the transcript on display.
func (c *Chat) Messages() []api.Message {
	return c.messages
}

// GetInput returns the current input text, trimmed
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the input field value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// InsertNewline adds a line break at the cursor.
func (c *Chat) InsertNewline() {
	c.input.InsertString("\n")
}

// renderNoSessionMessage renders the placeholder shown when no session is active
func renderNoSessionMessage() string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(msgStyle.Italic(true).Render("No chat selected"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("n"))
	sb.WriteString(msgStyle.Render(" to start a new chat"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("enter"))
	sb.WriteString(msgStyle.Render(" on a chat in the sidebar to reopen it"))
	return sb.String()
}

func (c *Chat) updateContent() {
	var sb strings.Builder

	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	switch {
	case !c.hasSession:
		sb.WriteString(renderNoSessionMessage())
	case len(c.messages) == 0 && !c.waiting:
		sb.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("Say hello to your tutor..."))
	default:
		for i, msg := range c.messages {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(renderBubble(msg, wrapWidth))
		}

		if c.waiting {
			if len(c.messages) > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(ChatAssistantStyle.Render(AssistantLabel + ":"))
			sb.WriteString("\n")
			sb.WriteString(renderSpinner(c.waitingVerb, c.spinnerIdx, time.Since(c.waitStartTime)))
		}
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// renderBubble renders one message with its role label.
func renderBubble(msg api.Message, width int) string {
	label := ChatAssistantStyle.Render(AssistantLabel + ":")
	body := renderMarkdown(strings.TrimSpace(msg.Text), width)
	if msg.Role == api.RoleUser {
		label = ChatUserStyle.Render(UserLabel + ":")
		body = wrapText(strings.TrimSpace(msg.Text), width)
	}
	return label + "\n" + body
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	if _, ok := msg.(StopwatchTickMsg); ok {
		c.advanceSpinner()
		return c, nil
	}

	var cmds []tea.Cmd

	if c.focused && c.hasSession {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case keys.PgUp, keys.PgDown, "ctrl+u", "ctrl+d":
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				return c, cmd
			}

			// Keys go to the input only so typing never scrolls
			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			return c, cmd
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	if !c.hasSession {
		return panelStyle.Width(c.width).Height(c.height).Render(c.viewport.View())
	}

	chatPanel := panelStyle.Width(c.width).Height(c.height - InputTotalHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
