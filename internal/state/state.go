package state

import "github.com/zhubert/tutor/internal/api"

// Mode selects which main view is shown.
type Mode int

const (
	ModeChat Mode = iota
	ModeQuiz
	ModeReview
)

// Modes lists every mode in tab order.
var Modes = []Mode{ModeChat, ModeQuiz, ModeReview}

func (m Mode) String() string {
	switch m {
	case ModeQuiz:
		return "quiz"
	case ModeReview:
		return "review"
	default:
		return "chat"
	}
}

// Next returns the mode after m in tab order, wrapping around.
func (m Mode) Next() Mode {
	return Modes[(int(m)+1)%len(Modes)]
}

// QuizPhase is the lifecycle of the quiz view.
type QuizPhase int

const (
	QuizIdle QuizPhase = iota
	QuizGenerating
	QuizActive
	QuizCompleted
	QuizFailed
)

func (p QuizPhase) String() string {
	switch p {
	case QuizGenerating:
		return "generating"
	case QuizActive:
		return "active"
	case QuizCompleted:
		return "completed"
	case QuizFailed:
		return "failed"
	default:
		return "idle"
	}
}

// GenerationStage is the step of quiz generation in progress.
type GenerationStage int

const (
	StageProfile GenerationStage = iota
	StageQuestions
)

// QuizView is the quiz sub-view to render.
type QuizView int

const (
	QuizViewStart QuizView = iota
	QuizViewLoading
	QuizViewContainer
)

// QuizState is everything the quiz view needs.
type QuizState struct {
	Phase QuizPhase
	Stage GenerationStage

	// Question is the question on screen. It is nil unless Phase is QuizActive.
	Question *api.Question

	// Result is the feedback for the most recent answer, if any.
	Result *api.AnswerResult

	// Answered is set once the current question has feedback; the choices
	// are hidden from then on.
	Answered bool

	Submitting bool
	Fetching   bool

	// Failure describes why generation failed when Phase is QuizFailed.
	Failure string
}

// View picks the quiz sub-view for the current phase.
func (q QuizState) View() QuizView {
	switch q.Phase {
	case QuizGenerating, QuizFailed:
		return QuizViewLoading
	case QuizActive, QuizCompleted:
		return QuizViewContainer
	default:
		return QuizViewStart
	}
}

// ChoicesVisible reports whether answer choices can be picked.
func (q QuizState) ChoicesVisible() bool {
	return q.Phase == QuizActive && q.Question != nil && !q.Answered
}

// ReviewPage is the page of the review view.
type ReviewPage int

const (
	ReviewSummary ReviewPage = iota
	ReviewDetails
)

// ReviewState is everything the review view needs.
type ReviewState struct {
	Page    ReviewPage
	Loading bool
	Loaded  bool

	// History is newest first.
	History []api.QuizSession

	// DetailIndex is the position in History shown on the details page.
	DetailIndex int

	// Seq identifies the most recent history request.
	Seq int
}

// Detail returns the entry shown on the details page.
func (r ReviewState) Detail() (api.QuizSession, bool) {
	if r.Page != ReviewDetails || r.DetailIndex < 0 || r.DetailIndex >= len(r.History) {
		return api.QuizSession{}, false
	}
	return r.History[r.DetailIndex], true
}

// QuizNumber is the label number of the entry at index i of History,
// counting the oldest quiz as 1.
func (r ReviewState) QuizNumber(i int) int {
	return len(r.History) - i
}

// State is the whole client UI state.
type State struct {
	Mode Mode

	// SessionID is the active session, or "" when there is none.
	SessionID string

	// Sessions is newest first.
	Sessions []api.SessionSummary

	// Messages is the transcript of the active session in arrival order.
	Messages []api.Message

	// Waiting is set while a chat reply is pending.
	Waiting bool

	// LoadingTranscript is set while the active session's transcript is being
	// fetched. Sending is refused until it arrives.
	LoadingTranscript bool

	Quiz   QuizState
	Review ReviewState
}

// New returns the state before initialization.
func New() State {
	return State{Mode: ModeChat}
}

// ActiveSession returns the summary of the active session.
func (s State) ActiveSession() (api.SessionSummary, bool) {
	for _, sess := range s.Sessions {
		if sess.ID == s.SessionID {
			return sess, true
		}
	}
	return api.SessionSummary{}, false
}

// LastReply returns the most recent assistant message.
func (s State) LastReply() (string, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == api.RoleAssistant {
			return s.Messages[i].Text, true
		}
	}
	return "", false
}

// ChatInputVisible reports whether the chat input is shown.
func (s State) ChatInputVisible() bool {
	return s.Mode == ModeChat
}
