package ui

import (
	"math"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/tutor/internal/api"
	"github.com/zhubert/tutor/internal/keys"
	"github.com/zhubert/tutor/internal/state"
)

// Loading copy for the two generation stages.
const (
	ProfileStageTitle     = "Building your profile..."
	ProfileStageSubtitle  = "Analyzing your learning progress"
	QuestionStageTitle    = "Generating questions..."
	QuestionStageSubtitle = "Creating personalized quiz for you"
	GenerationFailedText  = "Failed to generate quiz."
)

// QuizChoices is the number of answer choices per question.
const QuizChoices = 4

// Quiz is the main panel in quiz mode. It shows one of three sub-views:
// the start screen, the generation loading screen, or the quiz container.
type Quiz struct {
	viewport   viewport.Model
	width      int
	height     int
	focused    bool
	quiz       state.QuizState
	spinnerIdx int
}

// NewQuiz creates a new quiz panel
func NewQuiz() *Quiz {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	q := &Quiz{viewport: vp}
	q.updateContent()
	return q
}

// SetSize sets the quiz panel dimensions
func (q *Quiz) SetSize(width, height int) {
	q.width = width
	q.height = height

	q.viewport.SetWidth(InnerWidth(width))
	q.viewport.SetHeight(max(InnerHeight(height), 1))
	q.updateContent()
}

// SetFocused sets the focus state
func (q *Quiz) SetFocused(focused bool) {
	q.focused = focused
}

// IsFocused returns the focus state
func (q *Quiz) IsFocused() bool {
	return q.focused
}

// SetState replaces the quiz state being shown.
func (q *Quiz) SetState(s state.QuizState) {
	prev := q.quiz
	q.quiz = s
	q.updateContent()
	// New content starts at the top; feedback is appended below the question
	if prev.Question != s.Question || prev.Phase != s.Phase {
		q.viewport.GotoTop()
	}
}

// IsAnimating reports whether the loading spinner is running.
func (q *Quiz) IsAnimating() bool {
	return q.quiz.Phase == state.QuizGenerating
}

// Update handles messages
func (q *Quiz) Update(msg tea.Msg) (*Quiz, tea.Cmd) {
	switch msg := msg.(type) {
	case StopwatchTickMsg:
		if q.IsAnimating() {
			q.spinnerIdx = (q.spinnerIdx + 1) % len(spinnerFrames)
			q.updateContent()
		}
		return q, nil
	case tea.KeyPressMsg:
		switch msg.String() {
		case keys.PgUp, keys.PgDown, keys.Up, keys.Down, "ctrl+u", "ctrl+d":
		default:
			return q, nil
		}
	}

	var cmd tea.Cmd
	q.viewport, cmd = q.viewport.Update(msg)
	return q, cmd
}

func (q *Quiz) updateContent() {
	width := q.viewport.Width()
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var content string
	switch q.quiz.View() {
	case state.QuizViewLoading:
		content = q.renderLoading(width)
	case state.QuizViewContainer:
		content = q.renderContainer(width)
	default:
		content = renderQuizStart(width)
	}
	q.viewport.SetContent(content)
}

// renderQuizStart renders the start screen.
func renderQuizStart(width int) string {
	var sb strings.Builder
	sb.WriteString(QuizScoreStyle.Render("📝 Grammar quiz"))
	sb.WriteString("\n\n")
	sb.WriteString(wrapText(StatusMutedStyle.Render(
		"A short quiz built from what you have practised in your chats."), width))
	sb.WriteString("\n\n")
	sb.WriteString(renderKeyHint("g", "Start quiz"))
	return sb.String()
}

func (q *Quiz) renderLoading(width int) string {
	var sb strings.Builder

	if q.quiz.Phase == state.QuizFailed {
		sb.WriteString(StatusErrorStyle.Render(GenerationFailedText))
		if q.quiz.Failure != "" {
			sb.WriteString("\n")
			sb.WriteString(wrapText(StatusMutedStyle.Render(q.quiz.Failure), width))
		}
		sb.WriteString("\n\n")
		sb.WriteString(renderKeyHint("r", "Retry"))
		return sb.String()
	}

	title, subtitle := ProfileStageTitle, ProfileStageSubtitle
	if q.quiz.Stage == state.StageQuestions {
		title, subtitle = QuestionStageTitle, QuestionStageSubtitle
	}

	frame := spinnerFrames[q.spinnerIdx%len(spinnerFrames)]
	sb.WriteString(lipgloss.NewStyle().Foreground(ColorUser).Bold(true).Render(frame))
	sb.WriteString(" ")
	sb.WriteString(StatusLoadingStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(StatusMutedStyle.Render(subtitle))
	return sb.String()
}

func (q *Quiz) renderContainer(width int) string {
	var sb strings.Builder

	if question := q.quiz.Question; question != nil {
		if question.Progress != "" {
			sb.WriteString(QuizProgressStyle.Render(question.Progress))
			sb.WriteString("\n\n")
		}
		sb.WriteString(QuizQuestionStyle.Render(wrapText(question.Text, width)))
		sb.WriteString("\n\n")
	}

	switch {
	case q.quiz.ChoicesVisible() && q.quiz.Submitting:
		sb.WriteString(StatusLoadingStyle.Render("Checking your answer..."))
	case q.quiz.ChoicesVisible():
		sb.WriteString(renderChoiceKeys())
	case q.quiz.Fetching:
		sb.WriteString(StatusLoadingStyle.Render("Loading next question..."))
	}

	if q.quiz.Result != nil && !q.quiz.Fetching {
		sb.WriteString(renderFeedbackCard(*q.quiz.Result, width))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// renderChoiceKeys renders the 1-4 answer hints.
func renderChoiceKeys() string {
	parts := make([]string, 0, QuizChoices)
	for i := 1; i <= QuizChoices; i++ {
		parts = append(parts, QuizChoiceKeyStyle.Render(string(rune('0'+i))))
	}
	return strings.Join(parts, " ") + "  " + StatusMutedStyle.Render("press a number to answer")
}

// isCorrectFeedback reports whether the backend's feedback text announces
// a correct answer.
func isCorrectFeedback(feedback string) bool {
	f := strings.ToLower(strings.TrimSpace(feedback))
	return strings.HasPrefix(f, "correct") || strings.HasPrefix(f, "✅") || strings.HasPrefix(f, "✓")
}

// renderFeedbackCard renders the verdict for the last answer, the final
// score once the quiz is done, and the hint for what comes next.
func renderFeedbackCard(result api.AnswerResult, width int) string {
	inner := max(width-4, 10)

	var sb strings.Builder
	verdict := QuizIncorrectStyle
	if isCorrectFeedback(result.Feedback) {
		verdict = QuizCorrectStyle
	}
	sb.WriteString(verdict.Render(wrapText(result.Feedback, inner)))

	if explanation := strings.TrimSpace(result.Explanation); explanation != "" {
		sb.WriteString("\n\n")
		sb.WriteString(QuizExplanationStyle.Italic(true).Render(wrapText("Explanation: "+explanation, inner)))
	}

	if result.Done {
		if line := result.ScoreLine(); line != "" {
			sb.WriteString("\n\n")
			sb.WriteString(QuizScoreStyle.Render(line))
			level := result.Level
			if level == "" {
				level = api.Level(int(math.Round(result.Accuracy)))
			}
			sb.WriteString("  ")
			sb.WriteString(StatusMutedStyle.Render("Level " + level))
		}
		sb.WriteString("\n\n")
		sb.WriteString(renderKeyHint("g", "Next Quiz"))
	} else {
		sb.WriteString("\n\n")
		sb.WriteString(renderKeyHint(keys.Enter, "Next Question"))
	}

	return QuizFeedbackBoxStyle.Width(min(width, 72)).Render(sb.String())
}

// renderKeyHint renders "[key] label".
func renderKeyHint(key, label string) string {
	return KeyHintStyle.Render("["+key+"]") + " " + lipgloss.NewStyle().Foreground(ColorText).Render(label)
}

// View renders the quiz panel
func (q *Quiz) View() string {
	panelStyle := PanelStyle
	if q.focused {
		panelStyle = PanelFocusedStyle
	}
	return panelStyle.Width(q.width).Height(q.height).Render(q.viewport.View())
}
