package api

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// DefaultTitle is shown for sessions the backend has not titled yet.
const DefaultTitle = "New Chat"

// Role identifies who wrote a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat bubble.
type Message struct {
	Text string `json:"text"`
	Role Role   `json:"role"`
}

// SessionSummary is one entry of the session list.
type SessionSummary struct {
	ID        string
	Title     string
	CreatedAt string
}

// UnmarshalJSON accepts a bare id string, or an object carrying the id
// under either "id" or "session_id".
func (s *SessionSummary) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*s = SessionSummary{ID: id}
		return nil
	}

	var raw struct {
		ID        string `json:"id"`
		SessionID string `json:"session_id"`
		Title     string `json:"title"`
		CreatedAt string `json:"created_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ID = raw.ID
	if s.ID == "" {
		s.ID = raw.SessionID
	}
	s.Title = raw.Title
	s.CreatedAt = raw.CreatedAt
	return nil
}

// MarshalJSON writes the summary using the "session_id" key.
func (s SessionSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SessionID string `json:"session_id"`
		Title     string `json:"title"`
		CreatedAt string `json:"created_at,omitempty"`
	}{s.ID, s.Title, s.CreatedAt})
}

// DisplayTitle returns the title, or DefaultTitle when it is blank.
func (s SessionSummary) DisplayTitle() string {
	if strings.TrimSpace(s.Title) == "" {
		return DefaultTitle
	}
	return s.Title
}

// Transcript is the full content of one session.
type Transcript struct {
	SessionID string    `json:"session_id"`
	Title     string    `json:"title"`
	CreatedAt string    `json:"created_at"`
	Messages  []Message `json:"messages"`
}

// Question is the currently displayed quiz question.
type Question struct {
	Progress string `json:"progress"`
	Text     string `json:"text"`
}

// AnswerResult is the backend's verdict on a submitted choice.
type AnswerResult struct {
	Feedback    string  `json:"feedback"`
	Explanation string  `json:"explanation,omitempty"`
	Done        bool    `json:"done,omitempty"`
	FinalScore  int     `json:"final_score,omitempty"`
	Total       int     `json:"total,omitempty"`
	Accuracy    float64 `json:"accuracy,omitempty"`
	Level       string  `json:"level,omitempty"`
}

// ScoreLine formats the final score, for example "Final Score: 4/5 (80%)".
// It returns "" unless the quiz is done and the backend sent a total.
func (r AnswerResult) ScoreLine() string {
	if !r.Done || r.Total == 0 {
		return ""
	}
	return fmt.Sprintf("Final Score: %d/%d (%d%%)", r.FinalScore, r.Total, int(math.Round(r.Accuracy)))
}

// QuizQuestion is one answered question inside a history entry.
// Correct and UserAnswer are 0-based choice indexes.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	Correct     int      `json:"correct"`
	UserAnswer  int      `json:"user_answer"`
	IsCorrect   bool     `json:"is_correct"`
	Explanation string   `json:"explanation,omitempty"`
}

// QuizSession is one completed quiz from the history.
type QuizSession struct {
	Timestamp string         `json:"timestamp"`
	Questions []QuizQuestion `json:"questions"`
}

// Score returns the number of correct answers, the number of questions and
// the accuracy as a whole percentage. Accuracy is 0 for an empty quiz.
func (q QuizSession) Score() (correct, total, accuracy int) {
	total = len(q.Questions)
	for _, qq := range q.Questions {
		if qq.IsCorrect {
			correct++
		}
	}
	if total == 0 {
		return correct, total, 0
	}
	return correct, total, int(math.Round(100 * float64(correct) / float64(total)))
}

// timestampLayouts covers ISO-8601 timestamps with and without fractional
// seconds or a zone offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Time parses the entry's timestamp. Zone-less timestamps are read as local time.
func (q QuizSession) Time() (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, q.Timestamp, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Level grades an accuracy percentage from A (90 and up) to D (below 50).
func Level(accuracy int) string {
	switch {
	case accuracy >= 90:
		return "A"
	case accuracy >= 75:
		return "B"
	case accuracy >= 50:
		return "C"
	default:
		return "D"
	}
}

// HistoryStats aggregates a list of quiz sessions.
type HistoryStats struct {
	Quizzes         int
	Questions       int
	Correct         int
	AverageAccuracy int
}

// Stats sums up every session in history.
func Stats(history []QuizSession) HistoryStats {
	var s HistoryStats
	s.Quizzes = len(history)
	for _, q := range history {
		correct, total, _ := q.Score()
		s.Correct += correct
		s.Questions += total
	}
	if s.Questions > 0 {
		s.AverageAccuracy = int(math.Round(100 * float64(s.Correct) / float64(s.Questions)))
	}
	return s
}

// Reversed returns a copy of items in reverse order.
func Reversed[T any](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}
