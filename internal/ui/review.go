package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/zhubert/tutor/internal/api"
	"github.com/zhubert/tutor/internal/keys"
	"github.com/zhubert/tutor/internal/state"
)

// PassThreshold is the accuracy, in percent, at which a quiz counts as passed.
const PassThreshold = 70

// Empty-state copy for the review view.
const (
	NoHistoryText   = "No quiz history yet."
	NoHistoryDetail = "Take your first quiz to see your progress here!"
)

const reviewDateLayout = "Jan 2, 2006 3:04 PM"

// Review is the main panel in review mode: a list of past quizzes and a
// details page for one of them.
type Review struct {
	viewport viewport.Model
	width    int
	height   int
	focused  bool
	review   state.ReviewState
	cursor   int

	// cardLines holds the first and last content line of each summary card.
	cardLines [][2]int

	// now is used for relative dates
	now func() time.Time
}

// NewReview creates a new review panel
func NewReview() *Review {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	r := &Review{viewport: vp, now: time.Now}
	r.updateContent()
	return r
}

// SetSize sets the review panel dimensions
func (r *Review) SetSize(width, height int) {
	r.width = width
	r.height = height

	r.viewport.SetWidth(InnerWidth(width))
	r.viewport.SetHeight(max(InnerHeight(height), 1))
	r.updateContent()
}

// SetFocused sets the focus state
func (r *Review) SetFocused(focused bool) {
	r.focused = focused
}

// IsFocused returns the focus state
func (r *Review) IsFocused() bool {
	return r.focused
}

// SetState replaces the review state being shown.
func (r *Review) SetState(s state.ReviewState) {
	pageChanged := s.Page != r.review.Page || s.DetailIndex != r.review.DetailIndex
	r.review = s
	r.cursor = min(max(r.cursor, 0), max(len(s.History)-1, 0))
	if s.Page == state.ReviewDetails {
		r.cursor = s.DetailIndex
	}
	r.updateContent()
	if pageChanged {
		r.viewport.GotoTop()
		r.ensureCursorVisible()
	}
}

// SelectedIndex returns the position in history under the cursor, or -1
// when there is no history.
func (r *Review) SelectedIndex() int {
	if len(r.review.History) == 0 {
		return -1
	}
	return r.cursor
}

// Update handles messages
func (r *Review) Update(msg tea.Msg) (*Review, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		if r.review.Page == state.ReviewSummary {
			switch keyMsg.String() {
			case keys.Up, "k":
				r.moveCursor(-1)
				return r, nil
			case keys.Down, "j":
				r.moveCursor(1)
				return r, nil
			case keys.Home:
				r.moveCursor(-len(r.review.History))
				return r, nil
			case keys.End:
				r.moveCursor(len(r.review.History))
				return r, nil
			}
		}
		switch keyMsg.String() {
		case keys.PgUp, keys.PgDown, keys.Up, keys.Down, "ctrl+u", "ctrl+d":
		default:
			return r, nil
		}
	}

	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return r, cmd
}

func (r *Review) moveCursor(delta int) {
	if len(r.review.History) == 0 {
		return
	}
	r.cursor = min(max(r.cursor+delta, 0), len(r.review.History)-1)
	r.updateContent()
	r.ensureCursorVisible()
}

func (r *Review) ensureCursorVisible() {
	if r.review.Page != state.ReviewSummary || r.cursor >= len(r.cardLines) {
		return
	}
	span := r.cardLines[r.cursor]
	r.viewport.EnsureVisible(span[1], 0, 0)
	r.viewport.EnsureVisible(span[0], 0, 0)
}

func (r *Review) updateContent() {
	width := r.viewport.Width()
	if width <= 0 {
		width = DefaultWrapWidth
	}

	r.cardLines = nil

	var content string
	switch {
	case r.review.Loading && !r.review.Loaded:
		content = StatusLoadingStyle.Render("Loading quiz history...")
	case r.review.Page == state.ReviewDetails:
		if entry, ok := r.review.Detail(); ok {
			content = r.renderDetails(entry, width)
		}
	case len(r.review.History) == 0:
		content = renderNoHistory()
	default:
		content = r.renderSummary(width)
	}

	if r.review.Loading && r.review.Loaded {
		content = StatusMutedStyle.Render("Refreshing...") + "\n" + content
		for i := range r.cardLines {
			r.cardLines[i][0]++
			r.cardLines[i][1]++
		}
	}

	r.viewport.SetContent(content)
}

func renderNoHistory() string {
	var sb strings.Builder
	sb.WriteString(ReviewTitleStyle.Render(NoHistoryText))
	sb.WriteString("\n\n")
	sb.WriteString(StatusMutedStyle.Render(NoHistoryDetail))
	sb.WriteString("\n\n")
	sb.WriteString(renderKeyHint("f2", "Start your first quiz"))
	return sb.String()
}

// ScoreStyle picks the pass or fail colour for an accuracy percentage.
func ScoreStyle(accuracy int) lipgloss.Style {
	if accuracy >= PassThreshold {
		return ReviewPassStyle
	}
	return ReviewFailStyle
}

func (r *Review) renderSummary(width int) string {
	stats := api.Stats(r.review.History)

	var sb strings.Builder
	sb.WriteString(StatusMutedStyle.Render(fmt.Sprintf("%d %s · %d/%d correct · average %d%%",
		stats.Quizzes, pluralize(stats.Quizzes, "quiz", "quizzes"),
		stats.Correct, stats.Questions, stats.AverageAccuracy)))
	sb.WriteString("\n\n")
	line := 2

	cardWidth := min(width, 60)
	for i, entry := range r.review.History {
		card := r.renderCard(i, entry, cardWidth)
		height := lipgloss.Height(card)
		r.cardLines = append(r.cardLines, [2]int{line, line + height - 1})
		sb.WriteString(card)
		sb.WriteString("\n")
		line += height
	}
	sb.WriteString("\n")
	sb.WriteString(renderKeyHint(keys.Enter, "View Details"))

	return sb.String()
}

func (r *Review) renderCard(i int, entry api.QuizSession, width int) string {
	correct, total, accuracy := entry.Score()

	var sb strings.Builder
	sb.WriteString(ReviewTitleStyle.Render(fmt.Sprintf("🎯 Quiz %d", r.review.QuizNumber(i))))
	sb.WriteString("\n")
	sb.WriteString(ReviewDateStyle.Render(ansi.Truncate(r.formatDate(entry), max(width-4, 1), "…")))
	sb.WriteString("\n")
	sb.WriteString(ScoreStyle(accuracy).Render(fmt.Sprintf("%d/%d", correct, total)))
	sb.WriteString(" ")
	sb.WriteString(StatusMutedStyle.Render(fmt.Sprintf("(%d%%)", accuracy)))

	style := ReviewCardStyle
	if i == r.cursor {
		style = ReviewCardSelectedStyle
	}
	return style.Width(width).Render(sb.String())
}

// formatDate renders the entry's timestamp as a local date plus a relative
// time, falling back to the raw timestamp when it cannot be parsed.
func (r *Review) formatDate(entry api.QuizSession) string {
	t, ok := entry.Time()
	if !ok {
		return entry.Timestamp
	}
	return t.Format(reviewDateLayout) + " · " + humanize.RelTime(t, r.now(), "ago", "from now")
}

func (r *Review) renderDetails(entry api.QuizSession, width int) string {
	inner := max(min(width, 72)-4, 10)

	var sb strings.Builder
	sb.WriteString(renderKeyHint(keys.Escape, "← Back"))
	sb.WriteString("\n\n")

	correct, total, accuracy := entry.Score()
	sb.WriteString(ReviewTitleStyle.Render(fmt.Sprintf("🎯 Quiz %d", r.review.QuizNumber(r.review.DetailIndex))))
	sb.WriteString("  ")
	sb.WriteString(ScoreStyle(accuracy).Render(fmt.Sprintf("%d/%d", correct, total)))
	sb.WriteString(" ")
	sb.WriteString(StatusMutedStyle.Render(fmt.Sprintf("(%d%%) · Level %s", accuracy, api.Level(accuracy))))
	sb.WriteString("\n")
	sb.WriteString(ReviewDateStyle.Render(r.formatDate(entry)))
	sb.WriteString("\n")

	for i, q := range entry.Questions {
		sb.WriteString("\n")
		sb.WriteString(ReviewCardStyle.Width(min(width, 72)).Render(renderQuestionReview(i, q, inner)))
	}

	return sb.String()
}

// renderQuestionReview renders one answered question: the verdict, the
// question, the numbered choices and the explanation.
func renderQuestionReview(i int, q api.QuizQuestion, width int) string {
	var sb strings.Builder

	if q.IsCorrect {
		sb.WriteString(QuizCorrectStyle.Render(fmt.Sprintf("Q%d: ✓ Correct", i+1)))
	} else {
		sb.WriteString(QuizIncorrectStyle.Render(fmt.Sprintf("Q%d: ✗ Incorrect", i+1)))
	}
	sb.WriteString("\n")
	sb.WriteString(MarkdownBoldStyle.Render(wrapText(q.Question, width)))
	sb.WriteString("\n")

	for ci, choice := range q.Choices {
		line := fmt.Sprintf("%d. %s", ci+1, choice)
		switch {
		case ci == q.Correct:
			line = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Render(line + " ✓")
		case ci == q.UserAnswer && !q.IsCorrect:
			line = lipgloss.NewStyle().Foreground(ColorError).Render(line + " ✗")
		}
		sb.WriteString("\n")
		sb.WriteString(line)
	}

	if explanation := strings.TrimSpace(q.Explanation); explanation != "" {
		sb.WriteString("\n\n")
		sb.WriteString(QuizExplanationStyle.Italic(true).Render(wrapText("Explanation: "+explanation, width)))
	}

	return sb.String()
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// View renders the review panel
func (r *Review) View() string {
	panelStyle := PanelStyle
	if r.focused {
		panelStyle = PanelFocusedStyle
	}
	return panelStyle.Width(r.width).Height(r.height).Render(r.viewport.View())
}
