package state

import (
	"encoding/json"

	"github.com/zhubert/tutor/internal/api"
)

// Action is a named state transition.
type Action interface {
	action()
}

// Init starts the client by creating a fresh session.
type Init struct{}

// SessionCreated reports the id of a newly created session.
type SessionCreated struct{ ID string }

// SessionsLoaded carries the session list in backend order (oldest first).
type SessionsLoaded struct{ Sessions []api.SessionSummary }

// OpenSession makes ID the active session and loads its transcript.
type OpenSession struct{ ID string }

// TranscriptLoaded carries the messages of session ID.
type TranscriptLoaded struct {
	ID       string
	Messages []api.Message
}

// NewChat creates a new session and makes it active.
type NewChat struct{}

// DeleteConfirmed deletes session ID. The user has already confirmed.
type DeleteConfirmed struct{ ID string }

// SessionDeleted reports that ID is gone, with the remaining sessions in
// backend order.
type SessionDeleted struct {
	ID       string
	Sessions []api.SessionSummary
}

// SendMessage posts Text to the active session.
type SendMessage struct{ Text string }

// ChatReplied carries the assistant's reply for SessionID.
type ChatReplied struct {
	SessionID string
	Reply     string
}

// GenerateQuiz starts building a new quiz.
type GenerateQuiz struct{}

// ProfileReady carries the learner profile for the second generation step.
type ProfileReady struct{ Profile json.RawMessage }

// QuizGenerated carries the first question of a new quiz.
type QuizGenerated struct{ Question api.Question }

// QuizGenerationFailed reports that either generation step failed.
type QuizGenerationFailed struct{ Err error }

// AnswerQuestion submits a 1-based choice for the current question.
type AnswerQuestion struct{ Choice int }

// AnswerGraded carries the backend's verdict on the last answer.
type AnswerGraded struct{ Result api.AnswerResult }

// NextQuestion asks for the question after the one just answered.
type NextQuestion struct{}

// QuestionLoaded carries the next question.
type QuestionLoaded struct{ Question api.Question }

// SwitchMode shows another main view.
type SwitchMode struct{ Mode Mode }

// HistoryLoaded carries the quiz history (oldest first) for request Seq.
type HistoryLoaded struct {
	Seq     int
	History []api.QuizSession
}

// ShowDetails opens the details page for the entry at Index of the
// newest-first history.
type ShowDetails struct{ Index int }

// DetailsLoaded carries freshly loaded history (oldest first) for request Seq.
type DetailsLoaded struct {
	Seq     int
	Index   int
	History []api.QuizSession
}

// BackToSummary returns from the details page to the summary list.
type BackToSummary struct{}

// Failed reports that the effect Cause could not be completed.
type Failed struct {
	Cause Effect
	Err   error
}

func (Init) action()                 {}
func (SessionCreated) action()       {}
func (SessionsLoaded) action()       {}
func (OpenSession) action()          {}
func (TranscriptLoaded) action()     {}
func (NewChat) action()              {}
func (DeleteConfirmed) action()      {}
func (SessionDeleted) action()       {}
func (SendMessage) action()          {}
func (ChatReplied) action()          {}
func (GenerateQuiz) action()         {}
func (ProfileReady) action()         {}
func (QuizGenerated) action()        {}
func (QuizGenerationFailed) action() {}
func (AnswerQuestion) action()       {}
func (AnswerGraded) action()         {}
func (NextQuestion) action()         {}
func (QuestionLoaded) action()       {}
func (SwitchMode) action()           {}
func (HistoryLoaded) action()        {}
func (ShowDetails) action()          {}
func (DetailsLoaded) action()        {}
func (BackToSummary) action()        {}
func (Failed) action()               {}
