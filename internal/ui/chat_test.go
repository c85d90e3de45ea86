package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/tutor/internal/api"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
	}{
		{"short text within width", "hello world", 20},
		{"long text needs wrap", "this is a longer text that needs wrapping", 20},
		{"zero width returns original", "hello world", 0},
		{"negative width returns original", "hello world", -1},
		{"empty string", "", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := wrapText(tt.text, tt.width)

			if strings.Join(strings.Fields(result), " ") != tt.text {
				t.Errorf("wrapText(%q, %d) lost words: %q", tt.text, tt.width, result)
			}
			if tt.width <= 0 {
				if result != tt.text {
					t.Errorf("wrapText(%q, %d) = %q, want unchanged", tt.text, tt.width, result)
				}
				return
			}
			for _, line := range strings.Split(result, "\n") {
				if w := ansi.StringWidth(line); w > tt.width {
					t.Errorf("line %q is %d wide, limit %d", line, w, tt.width)
				}
			}
		})
	}
}

func TestWrapText_Wraps(t *testing.T) {
	result := wrapText("this is a longer text that needs wrapping", 20)
	if strings.Count(result, "\n") < 2 {
		t.Errorf("Expected at least three lines, got %q", result)
	}
}

func TestRenderMarkdownLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		check func(string) bool
	}{
		{
			name:  "h1 header",
			line:  "# Header One",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "Header One") && !strings.Contains(s, "#") },
		},
		{
			name:  "h2 header",
			line:  "## Header Two",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "Header Two") },
		},
		{
			name:  "h3 header",
			line:  "### Header Three",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "Header Three") },
		},
		{
			name:  "horizontal rule",
			line:  "---",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "─") },
		},
		{
			name:  "blockquote",
			line:  "> Remember the rule",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "Remember the rule") },
		},
		{
			name:  "bullet list",
			line:  "- went is the past of go",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "•") && strings.Contains(s, "went") },
		},
		{
			name:  "numbered list",
			line:  "2. second item",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "2.") && strings.Contains(s, "second item") },
		},
		{
			name:  "two digit numbered list",
			line:  "12. twelfth item",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "12.") && strings.Contains(s, "twelfth item") },
		},
		{
			name:  "plain text",
			line:  "Just text",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "Just text") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := renderMarkdownLine(tt.line, tt.width)
			if !tt.check(ansi.Strip(result)) {
				t.Errorf("renderMarkdownLine(%q) = %q, check failed", tt.line, result)
			}
		})
	}
}

func TestRenderMarkdownLine_IndentsWrappedListItems(t *testing.T) {
	result := ansi.Strip(renderMarkdownLine("- "+strings.Repeat("word ", 12), 30))
	lines := strings.Split(result, "\n")
	if len(lines) < 2 {
		t.Fatalf("Expected list item to wrap, got %q", result)
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "    ") {
			t.Errorf("Continuation line should be indented, got %q", line)
		}
	}
}

func TestRenderInlineMarkdown(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"bold text", "This is **bold** text", "This is bold text"},
		{"inline code", "Use `went` here", "Use went here"},
		{"link", "See [grammar](https://example.com)", "See grammar (https://example.com)"},
		{"italic", "an _irregular_ verb", "an irregular verb"},
		{"snake case untouched", "call foo_bar_baz now", "call foo_bar_baz now"},
		{"bold inside code untouched", "type `**x**`", "type **x**"},
		{"plain text unchanged", "Just plain text", "Just plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ansi.Strip(renderInlineMarkdown(tt.line))
			if result != tt.want {
				t.Errorf("renderInlineMarkdown(%q) = %q, want %q", tt.line, result, tt.want)
			}
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		content string
		width   int
		check   func(string) bool
	}{
		{
			name:    "simple text",
			content: "Hello world",
			width:   80,
			check:   func(s string) bool { return strings.Contains(s, "Hello world") },
		},
		{
			name:    "code block",
			content: "```go\nfunc main() {}\n```",
			width:   80,
			check:   func(s string) bool { return strings.Contains(s, "main") && !strings.Contains(s, "```") },
		},
		{
			name:    "mixed content",
			content: "# Title\n\nSome text\n\n```python\nprint('hi')\n```\n\nMore text",
			width:   80,
			check: func(s string) bool {
				return strings.Contains(s, "Title") && strings.Contains(s, "print") && strings.Contains(s, "More text")
			},
		},
		{
			name:    "zero width uses default",
			content: "Test content",
			width:   0,
			check:   func(s string) bool { return strings.Contains(s, "Test content") },
		},
		{
			name:    "unclosed code block",
			content: "```go\nsome code",
			width:   80,
			check:   func(s string) bool { return strings.Contains(s, "code") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ansi.Strip(renderMarkdown(tt.content, tt.width))
			if !tt.check(result) {
				t.Errorf("renderMarkdown check failed for %s, got: %q", tt.name, result)
			}
		})
	}
}

func TestHighlightCode_UsesThemeStyle(t *testing.T) {
	original := CurrentThemeName()
	t.Cleanup(func() { SetTheme(original) })

	for _, name := range ThemeNames() {
		SetTheme(name)
		result := highlightCode("x := 1", "go")
		if !strings.Contains(ansi.Strip(result), "x := 1") {
			t.Errorf("theme %s: highlighted code lost its text: %q", name, result)
		}
	}
}

func TestRenderSpinner(t *testing.T) {
	for _, verb := range []string{"Thinking", "Pondering"} {
		for i := 0; i < len(spinnerFrames)*2; i++ {
			result := ansi.Strip(renderSpinner(verb, i, 3*time.Second))
			if !strings.Contains(result, verb+"...") {
				t.Errorf("renderSpinner(%q, %d) = %q, should contain verb", verb, i, result)
			}
			if !strings.Contains(result, "3s") {
				t.Errorf("renderSpinner(%q, %d) = %q, should contain elapsed time", verb, i, result)
			}
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{1500 * time.Millisecond, "1s"},
		{59 * time.Second, "59s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRandomThinkingVerb(t *testing.T) {
	for i := 0; i < 100; i++ {
		verb := randomThinkingVerb()
		found := false
		for _, v := range thinkingVerbs {
			if v == verb {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("randomThinkingVerb returned invalid verb: %q", verb)
		}
	}
}

func newSizedChat(t *testing.T) *Chat {
	t.Helper()
	chat := NewChat()
	chat.SetSize(80, 30)
	return chat
}

func TestChat_NewChat(t *testing.T) {
	chat := NewChat()

	if chat == nil {
		t.Fatal("NewChat() returned nil")
	}
	if chat.HasSession() {
		t.Error("New chat should have no session")
	}
	if chat.IsWaiting() {
		t.Error("New chat should not be waiting")
	}
}

func TestChat_NoSessionPlaceholder(t *testing.T) {
	chat := newSizedChat(t)

	view := ansi.Strip(chat.View())
	if !strings.Contains(view, "No chat selected") {
		t.Errorf("Expected placeholder, got:\n%s", view)
	}
	if strings.Contains(view, "Ask your tutor") {
		t.Error("Input should be hidden without a session")
	}
}

func TestChat_RendersMessagesInOrder(t *testing.T) {
	chat := newSizedChat(t)
	chat.SetHasSession(true)
	chat.SetMessages([]api.Message{
		{Role: api.RoleUser, Text: "How do I say 'ir' in the past?"},
		{Role: api.RoleAssistant, Text: "Use **went**."},
	})

	content := ansi.Strip(chat.viewport.View())

	userIdx := strings.Index(content, UserLabel+":")
	tutorIdx := strings.Index(content, AssistantLabel+":")
	if userIdx < 0 || tutorIdx < 0 {
		t.Fatalf("Expected both role labels, got:\n%s", content)
	}
	if userIdx > tutorIdx {
		t.Error("User message should come before the reply")
	}
	if !strings.Contains(content, "Use went.") {
		t.Errorf("Assistant markdown should be rendered, got:\n%s", content)
	}
}

func TestChat_UserTextIsNotMarkdown(t *testing.T) {
	chat := newSizedChat(t)
	chat.SetHasSession(true)
	chat.SetMessages([]api.Message{{Role: api.RoleUser, Text: "what does **this** mean"}})

	if !strings.Contains(ansi.Strip(chat.viewport.View()), "**this**") {
		t.Error("User text should be shown verbatim")
	}
}

func TestChat_EmptySession(t *testing.T) {
	chat := newSizedChat(t)
	chat.SetHasSession(true)

	if !strings.Contains(ansi.Strip(chat.viewport.View()), "Say hello") {
		t.Error("Expected empty-session hint")
	}
}

func TestChat_Waiting(t *testing.T) {
	chat := newSizedChat(t)
	chat.SetHasSession(true)
	chat.SetMessages([]api.Message{{Role: api.RoleUser, Text: "hi"}})

	chat.SetWaiting(true)
	if !chat.IsWaiting() {
		t.Fatal("Expected waiting")
	}

	content := ansi.Strip(chat.viewport.View())
	if !strings.Contains(content, chat.waitingVerb+"...") {
		t.Errorf("Expected spinner while waiting, got:\n%s", content)
	}

	chat.Update(StopwatchTickMsg(time.Now()))
	if chat.spinnerIdx != 1 {
		t.Errorf("Spinner should advance, got frame %d", chat.spinnerIdx)
	}

	chat.SetWaiting(false)
	chat.Update(StopwatchTickMsg(time.Now()))
	if chat.spinnerIdx != 1 {
		t.Error("Spinner should not advance once the reply arrived")
	}
	if strings.Contains(ansi.Strip(chat.viewport.View()), "...") {
		t.Error("Spinner should be gone after waiting ends")
	}
}

func TestChat_WaitingKeepsStartTime(t *testing.T) {
	chat := NewChat()
	chat.SetWaiting(true)
	start := chat.waitStartTime

	chat.SetWaiting(true)
	if !chat.waitStartTime.Equal(start) {
		t.Error("Repeated SetWaiting(true) should not restart the stopwatch")
	}
}

func TestChat_Input(t *testing.T) {
	chat := NewChat()

	chat.SetInput("  hello  ")
	if chat.GetInput() != "hello" {
		t.Errorf("Expected trimmed input, got %q", chat.GetInput())
	}

	chat.InsertNewline()
	if !strings.Contains(chat.input.Value(), "\n") {
		t.Error("InsertNewline should add a line break")
	}

	chat.ClearInput()
	if chat.GetInput() != "" {
		t.Errorf("Expected empty input after clear, got %q", chat.GetInput())
	}
}

func TestChat_TypingGoesToInput(t *testing.T) {
	chat := newSizedChat(t)
	chat.SetHasSession(true)
	chat.SetFocused(true)

	for _, r := range "hola" {
		chat.Update(keyPress(string(r)))
	}

	if chat.GetInput() != "hola" {
		t.Errorf("Expected typed text in input, got %q", chat.GetInput())
	}
}

func TestChat_FocusState(t *testing.T) {
	chat := NewChat()
	chat.SetHasSession(true)

	chat.SetFocused(true)
	if !chat.IsFocused() || !chat.input.Focused() {
		t.Error("Chat and input should be focused")
	}

	chat.SetFocused(false)
	if chat.IsFocused() || chat.input.Focused() {
		t.Error("Chat and input should be blurred")
	}
}

func TestChat_SetSize(t *testing.T) {
	chat := newSizedChat(t)

	if chat.viewport.Width() != InnerWidth(80) {
		t.Errorf("Viewport width = %d, want %d", chat.viewport.Width(), InnerWidth(80))
	}
	if chat.viewport.Height() != InnerHeight(30-InputTotalHeight) {
		t.Errorf("Viewport height = %d, want %d", chat.viewport.Height(), InnerHeight(30-InputTotalHeight))
	}
}

func TestChat_View_ShowsInputWithSession(t *testing.T) {
	chat := newSizedChat(t)
	chat.SetHasSession(true)

	view := ansi.Strip(chat.View())
	if !strings.Contains(view, "Ask your tutor") {
		t.Errorf("Expected input placeholder, got:\n%s", view)
	}
}

func TestSpinnerFrames(t *testing.T) {
	if len(spinnerFrames) == 0 {
		t.Fatal("spinnerFrames should not be empty")
	}
	for i, frame := range spinnerFrames {
		if frame == "" {
			t.Errorf("spinnerFrames[%d] is empty", i)
		}
	}
}
