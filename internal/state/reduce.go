package state

import (
	"strings"

	"github.com/zhubert/tutor/internal/api"
)

// Reduce applies a to s and returns the next state and the effects to run.
func Reduce(s State, a Action) (State, []Effect) {
	switch a := a.(type) {
	case Init:
		return s, []Effect{CreateSession{}}

	case NewChat:
		return s, []Effect{CreateSession{}}

	case SessionCreated:
		s.SessionID = a.ID
		s.Messages = nil
		s.Waiting = false
		s.LoadingTranscript = false
		return s, []Effect{LoadSessions{}}

	case SessionsLoaded:
		s.Sessions = api.Reversed(a.Sessions)
		return s, nil

	case OpenSession:
		if a.ID == "" {
			return s, nil
		}
		s.Mode = ModeChat
		if a.ID == s.SessionID && s.Waiting {
			// A refetch now could drop the pending message
			return s, nil
		}
		if a.ID != s.SessionID {
			s.SessionID = a.ID
			s.Messages = nil
			s.Waiting = false
		}
		s.LoadingTranscript = true
		return s, []Effect{FetchTranscript{ID: a.ID}}

	case TranscriptLoaded:
		if a.ID != s.SessionID || !s.LoadingTranscript {
			return s, nil
		}
		s.LoadingTranscript = false
		s.Messages = append([]api.Message(nil), a.Messages...)
		return s, nil

	case DeleteConfirmed:
		if a.ID == "" {
			return s, nil
		}
		return s, []Effect{DeleteSession{ID: a.ID}}

	case SessionDeleted:
		return reduceDeleted(s, a)

	case SendMessage:
		text := strings.TrimSpace(a.Text)
		if s.Mode != ModeChat || text == "" || s.Waiting || s.LoadingTranscript || s.SessionID == "" {
			return s, nil
		}
		s.Messages = appendMessage(s.Messages, api.Message{Text: text, Role: api.RoleUser})
		s.Waiting = true
		return s, []Effect{PostChat{SessionID: s.SessionID, Text: text}}

	case ChatReplied:
		// The title may have changed server-side even when the reply is stale
		if a.SessionID != s.SessionID || !s.Waiting {
			return s, []Effect{LoadSessions{}}
		}
		s.Waiting = false
		s.Messages = appendMessage(s.Messages, api.Message{Text: a.Reply, Role: api.RoleAssistant})
		return s, []Effect{LoadSessions{}}

	case GenerateQuiz:
		if s.Quiz.Phase == QuizGenerating {
			return s, nil
		}
		s.Quiz = QuizState{Phase: QuizGenerating, Stage: StageProfile}
		return s, []Effect{PrepareProfile{}}

	case ProfileReady:
		if s.Quiz.Phase != QuizGenerating || s.Quiz.Stage != StageProfile {
			return s, nil
		}
		s.Quiz.Stage = StageQuestions
		return s, []Effect{GenerateFromProfile{Profile: a.Profile}}

	case QuizGenerated:
		if s.Quiz.Phase != QuizGenerating {
			return s, nil
		}
		q := a.Question
		s.Quiz = QuizState{Phase: QuizActive, Question: &q}
		return s, nil

	case QuizGenerationFailed:
		if s.Quiz.Phase != QuizGenerating {
			return s, nil
		}
		s.Quiz = QuizState{Phase: QuizFailed, Failure: errorText(a.Err)}
		return s, nil

	case AnswerQuestion:
		if a.Choice < 1 || a.Choice > 4 || !s.Quiz.ChoicesVisible() || s.Quiz.Submitting {
			return s, nil
		}
		s.Quiz.Submitting = true
		return s, []Effect{SubmitAnswer{Choice: a.Choice}}

	case AnswerGraded:
		if s.Quiz.Phase != QuizActive || !s.Quiz.Submitting {
			return s, nil
		}
		r := a.Result
		s.Quiz.Submitting = false
		s.Quiz.Answered = true
		s.Quiz.Result = &r
		if r.Done {
			s.Quiz.Phase = QuizCompleted
			s.Quiz.Question = nil
		}
		return s, nil

	case NextQuestion:
		if s.Quiz.Phase != QuizActive || !s.Quiz.Answered || s.Quiz.Fetching {
			return s, nil
		}
		s.Quiz.Fetching = true
		return s, []Effect{FetchNextQuestion{}}

	case QuestionLoaded:
		if s.Quiz.Phase != QuizActive || !s.Quiz.Fetching {
			return s, nil
		}
		q := a.Question
		s.Quiz = QuizState{Phase: QuizActive, Question: &q}
		return s, nil

	case SwitchMode:
		s.Mode = a.Mode
		if a.Mode == ModeReview {
			return requestHistory(s)
		}
		return s, nil

	case HistoryLoaded:
		if a.Seq != s.Review.Seq {
			return s, nil
		}
		s.Review.History = api.Reversed(a.History)
		s.Review.Loading = false
		s.Review.Loaded = true
		s.Review.Page = ReviewSummary
		return s, nil

	case ShowDetails:
		if a.Index < 0 || a.Index >= len(s.Review.History) {
			return s, nil
		}
		s.Review.Seq++
		s.Review.Loading = true
		return s, []Effect{LoadHistoryDetail{Seq: s.Review.Seq, Index: a.Index}}

	case DetailsLoaded:
		if a.Seq != s.Review.Seq {
			return s, nil
		}
		s.Review.History = api.Reversed(a.History)
		s.Review.Loading = false
		s.Review.Loaded = true
		if a.Index < 0 || a.Index >= len(s.Review.History) {
			s.Review.Page = ReviewSummary
			return s, nil
		}
		s.Review.Page = ReviewDetails
		s.Review.DetailIndex = a.Index
		return s, nil

	case BackToSummary:
		if s.Review.Page != ReviewDetails {
			return s, nil
		}
		return requestHistory(s)

	case Failed:
		return reduceFailed(s, a)
	}
	return s, nil
}

func reduceDeleted(s State, a SessionDeleted) (State, []Effect) {
	s.Sessions = api.Reversed(a.Sessions)
	if len(s.Sessions) == 0 {
		s.SessionID = ""
		s.Messages = nil
		s.Waiting = false
		s.LoadingTranscript = false
		return s, nil
	}
	if a.ID != s.SessionID {
		return s, nil
	}
	s.SessionID = s.Sessions[0].ID
	s.Messages = nil
	s.Waiting = false
	s.LoadingTranscript = true
	return s, []Effect{FetchTranscript{ID: s.SessionID}}
}

func reduceFailed(s State, a Failed) (State, []Effect) {
	switch c := a.Cause.(type) {
	case PostChat:
		if c.SessionID == s.SessionID {
			s.Waiting = false
		}
	case FetchTranscript:
		if c.ID == s.SessionID {
			s.LoadingTranscript = false
		}
	case PrepareProfile, GenerateFromProfile:
		return Reduce(s, QuizGenerationFailed{Err: a.Err})
	case SubmitAnswer:
		s.Quiz.Submitting = false
	case FetchNextQuestion:
		s.Quiz.Fetching = false
	case LoadHistory:
		if c.Seq == s.Review.Seq {
			s.Review.Loading = false
		}
	case LoadHistoryDetail:
		if c.Seq == s.Review.Seq {
			s.Review.Loading = false
		}
	}
	return s, nil
}

func requestHistory(s State) (State, []Effect) {
	s.Review.Seq++
	s.Review.Loading = true
	s.Review.Page = ReviewSummary
	return s, []Effect{LoadHistory{Seq: s.Review.Seq}}
}

// appendMessage returns a new slice so the previous state's slice is untouched.
func appendMessage(msgs []api.Message, m api.Message) []api.Message {
	out := make([]api.Message, len(msgs), len(msgs)+1)
	copy(out, msgs)
	return append(out, m)
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
