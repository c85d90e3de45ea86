// Package fakebackend is an in-memory implementation of the tutor backend API.
// It backs the client's tests and the demo-server command.
package fakebackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

// timestampLayout matches the ISO-8601 form the real backend writes.
const timestampLayout = "2006-01-02T15:04:05.000000"

// maxTitleLength is how many characters of the first user message become the title.
const maxTitleLength = 40

type session struct {
	ID        string         `json:"session_id"`
	CreatedAt string         `json:"created_at"`
	Title     string         `json:"title"`
	Messages  []messageEntry `json:"messages"`
}

type messageEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type answerRecord struct {
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	Correct     int      `json:"correct"`
	UserAnswer  int      `json:"user_answer"`
	IsCorrect   bool     `json:"is_correct"`
	Explanation string   `json:"explanation"`
}

type historyEntry struct {
	Timestamp string         `json:"timestamp"`
	Questions []answerRecord `json:"questions"`
}

type activeQuiz struct {
	questions []bankQuestion
	current   int
	score     int
	answers   []answerRecord
}

// Server holds all backend state in memory. It is safe for concurrent use.
type Server struct {
	mu            sync.Mutex
	sessions      []*session
	quiz          *activeQuiz
	history       []historyEntry
	invalidations int
	lastProfile   json.RawMessage
	failures      map[string]int
	bank          []bankQuestion
	now           func() time.Time
	reply         func(message string) string
	router        chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithReply sets the function producing assistant replies.
func WithReply(reply func(message string) string) Option {
	return func(s *Server) { s.reply = reply }
}

// WithRequestLogging logs every request with chi's logger middleware.
func WithRequestLogging() Option {
	return func(s *Server) { s.router.Use(middleware.Logger) }
}

// New returns a server with no sessions and no history.
func New(opts ...Option) *Server {
	s := &Server{
		failures: make(map[string]int),
		bank:     defaultBank,
		now:      time.Now,
		reply:    defaultReply,
		router:   chi.NewRouter(),
	}
	s.router.Use(middleware.RequestID, middleware.Recoverer)
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	r.Use(s.injectFailures)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.listSessions)
		r.Post("/new", s.newSession)
		r.Get("/{sessionID}", s.getSession)
		r.Delete("/{sessionID}", s.deleteSession)
	})
	r.Post("/chat", s.chat)
	r.Route("/quiz", func(r chi.Router) {
		r.Post("/prepare", s.prepare)
		r.Post("/generate", s.generate)
		r.Get("/next", s.next)
		r.Post("/answer", s.answer)
		r.Get("/history", s.getHistory)
	})
	r.Post("/profile/invalidate", s.invalidate)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Fail makes every request to path answer with status until cleared with
// status 0.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, path)
		return
	}
	s.failures[path] = status
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, ok := s.failures[r.URL.Path]
		s.mu.Unlock()
		if ok {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SeedSession adds a session with the given id, title and messages, and
// returns the id. Messages alternate user and assistant roles.
func (s *Server) SeedSession(id, title string, messages ...string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	sess := &session{ID: id, CreatedAt: s.timestamp(), Title: title, Messages: []messageEntry{}}
	for i, text := range messages {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		sess.Messages = append(sess.Messages, messageEntry{Role: role, Text: text})
	}
	s.sessions = append(s.sessions, sess)
	return id
}

// SeedHistory appends a completed quiz where the first correct answers are right.
func (s *Server) SeedHistory(timestamp string, correct, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := historyEntry{Timestamp: timestamp, Questions: []answerRecord{}}
	for i := 0; i < total; i++ {
		q := s.bank[i%len(s.bank)]
		rec := answerRecord{
			Question:    q.Question,
			Choices:     q.Choices,
			Correct:     q.Correct,
			UserAnswer:  q.Correct,
			IsCorrect:   i < correct,
			Explanation: q.Explanation,
		}
		if !rec.IsCorrect {
			rec.UserAnswer = (q.Correct + 1) % len(q.Choices)
		}
		entry.Questions = append(entry.Questions, rec)
	}
	s.history = append(s.history, entry)
}

// SessionIDs returns the ids of all sessions, oldest first.
func (s *Server) SessionIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.sessions))
	for i, sess := range s.sessions {
		ids[i] = sess.ID
	}
	return ids
}

// Invalidations returns how many times the profile cache was invalidated.
func (s *Server) Invalidations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidations
}

// LastProfile returns the body most recently posted to /quiz/generate.
func (s *Server) LastProfile() json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastProfile
}

func (s *Server) timestamp() string {
	return s.now().Format(timestampLayout)
}

func (s *Server) find(id string) (*session, int) {
	for i, sess := range s.sessions {
		if sess.ID == id {
			return sess, i
		}
	}
	return nil, -1
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type summary struct {
		ID        string `json:"session_id"`
		CreatedAt string `json:"created_at"`
		Title     string `json:"title"`
	}
	out := make([]summary, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, summary{sess.ID, sess.CreatedAt, sess.Title})
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": out})
}

func (s *Server) newSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &session{ID: uuid.NewString(), CreatedAt: s.timestamp(), Messages: []messageEntry{}}
	s.sessions = append(s.sessions, sess)
	writeJSON(w, http.StatusOK, map[string]string{"session_id": sess.ID})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _ := s.find(chi.URLParam(r, "sessionID"))
	if sess == nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": "Session not found"})
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, i := s.find(chi.URLParam(r, "sessionID")); i >= 0 {
		s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _ := s.find(req.SessionID)
	if sess == nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": "Invalid session_id"})
		return
	}

	text := strings.TrimSpace(req.Message)
	sess.Messages = append(sess.Messages, messageEntry{Role: "user", Text: text})
	if sess.Title == "" && text != "" {
		sess.Title = truncateRunes(text, maxTitleLength)
	}

	answer := strings.TrimSpace(s.reply(text))
	sess.Messages = append(sess.Messages, messageEntry{Role: "assistant", Text: answer})
	writeJSON(w, http.StatusOK, map[string]string{"response": answer})
}

func (s *Server) prepare(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userMessages := 0
	for _, sess := range s.sessions {
		for _, m := range sess.Messages {
			if m.Role == "user" {
				userMessages++
			}
		}
	}
	profile := map[string]any{
		"user_messages":  userMessages,
		"quizzes_taken":  len(s.history),
		"weak_topics":    []string{"present_simple", "prepositions"},
		"invalidated_at": s.invalidations,
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "profile": profile})
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastProfile = body
	n := QuestionsPerQuiz
	if n > len(s.bank) {
		n = len(s.bank)
	}
	s.quiz = &activeQuiz{questions: s.bank[:n]}
	writeJSON(w, http.StatusOK, s.currentQuestion())
}

func (s *Server) next(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quiz == nil {
		writeJSON(w, http.StatusOK, map[string]string{"progress": "-", "text": "No active quiz"})
		return
	}
	writeJSON(w, http.StatusOK, s.currentQuestion())
}

func (s *Server) currentQuestion() map[string]string {
	q := s.quiz.questions[s.quiz.current]
	idx := s.quiz.current + 1
	return map[string]string{
		"progress": fmt.Sprintf("Q%d/%d", idx, len(s.quiz.questions)),
		"text":     formatQuestion(q, idx),
	}
}

func formatQuestion(q bankQuestion, idx int) string {
	lines := []string{fmt.Sprintf("Q%d: %s", idx, q.Question)}
	for i, c := range q.Choices {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, c))
	}
	lines = append(lines, "", "Please answer with 1, 2, 3, or 4.")
	return strings.Join(lines, "\n")
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice int `json:"choice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quiz := s.quiz
	if quiz == nil {
		writeJSON(w, http.StatusOK, map[string]any{"done": true, "feedback": "Quiz not active"})
		return
	}

	q := quiz.questions[quiz.current]
	isCorrect := req.Choice-1 == q.Correct
	feedback := "Correct!"
	if isCorrect {
		quiz.score++
	} else {
		feedback = fmt.Sprintf("Incorrect.\nCorrect answer: %d. %s", q.Correct+1, q.Choices[q.Correct])
	}
	quiz.answers = append(quiz.answers, answerRecord{
		Question:    q.Question,
		Choices:     q.Choices,
		Correct:     q.Correct,
		UserAnswer:  req.Choice - 1,
		IsCorrect:   isCorrect,
		Explanation: q.Explanation,
	})
	quiz.current++

	if quiz.current < len(quiz.questions) {
		writeJSON(w, http.StatusOK, map[string]any{
			"done":        false,
			"feedback":    feedback,
			"explanation": q.Explanation,
		})
		return
	}

	s.history = append(s.history, historyEntry{Timestamp: s.timestamp(), Questions: quiz.answers})
	s.quiz = nil
	total := len(quiz.questions)
	accuracy := float64(quiz.score) / float64(total) * 100
	writeJSON(w, http.StatusOK, map[string]any{
		"done":        true,
		"feedback":    feedback,
		"explanation": q.Explanation,
		"final_score": quiz.score,
		"total":       total,
		"accuracy":    accuracy,
		"level":       level(accuracy),
	})
}

func level(accuracy float64) string {
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

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.history
	if history == nil {
		history = []historyEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

func (s *Server) invalidate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invalidations++
	writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func defaultReply(message string) string {
	if strings.HasSuffix(message, "?") {
		return fmt.Sprintf("Good question! Here is an example:\n\n```text\n%s\n```\n\nTry writing your own sentence with it.", message)
	}
	return fmt.Sprintf("You wrote: \"%s\". That reads well. Keep practising!", message)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
