package state

import "encoding/json"

// Effect is a backend call requested by Reduce.
type Effect interface {
	effect()
}

// CreateSession calls POST /sessions/new. Result: SessionCreated.
type CreateSession struct{}

// LoadSessions calls GET /sessions. Result: SessionsLoaded.
type LoadSessions struct{}

// FetchTranscript calls GET /sessions/{id}. Result: TranscriptLoaded.
type FetchTranscript struct{ ID string }

// DeleteSession calls DELETE /sessions/{id} then GET /sessions.
// Result: SessionDeleted.
type DeleteSession struct{ ID string }

// PostChat calls POST /chat. Result: ChatReplied.
type PostChat struct {
	SessionID string
	Text      string
}

// PrepareProfile calls POST /quiz/prepare. Result: ProfileReady.
type PrepareProfile struct{}

// GenerateFromProfile calls POST /quiz/generate. Result: QuizGenerated.
type GenerateFromProfile struct{ Profile json.RawMessage }

// SubmitAnswer calls POST /quiz/answer. Result: AnswerGraded.
type SubmitAnswer struct{ Choice int }

// FetchNextQuestion calls GET /quiz/next. Result: QuestionLoaded.
type FetchNextQuestion struct{}

// LoadHistory calls GET /quiz/history. Result: HistoryLoaded.
type LoadHistory struct{ Seq int }

// LoadHistoryDetail calls GET /quiz/history. Result: DetailsLoaded.
type LoadHistoryDetail struct {
	Seq   int
	Index int
}

func (CreateSession) effect()       {}
func (LoadSessions) effect()        {}
func (FetchTranscript) effect()     {}
func (DeleteSession) effect()       {}
func (PostChat) effect()            {}
func (PrepareProfile) effect()      {}
func (GenerateFromProfile) effect() {}
func (SubmitAnswer) effect()        {}
func (FetchNextQuestion) effect()   {}
func (LoadHistory) effect()         {}
func (LoadHistoryDetail) effect()   {}
