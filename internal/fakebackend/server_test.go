package fakebackend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func doJSON(t *testing.T, s *Server, method, path, body string) map[string]any {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("%s %s: status %d: %s", method, path, rec.Code, rec.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: invalid JSON: %v", method, path, err)
	}
	return out
}

func TestChat_SetsTitleFromFirstMessage(t *testing.T) {
	s := New()
	id := doJSON(t, s, "POST", "/sessions/new", "")["session_id"].(string)

	long := strings.Repeat("a", 60)
	doJSON(t, s, "POST", "/chat", `{"session_id":"`+id+`","message":"  `+long+`  "}`)
	doJSON(t, s, "POST", "/chat", `{"session_id":"`+id+`","message":"second"}`)

	sessions := doJSON(t, s, "GET", "/sessions", "")["sessions"].([]any)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	title := sessions[0].(map[string]any)["title"].(string)
	if title != strings.Repeat("a", maxTitleLength) {
		t.Errorf("title = %q", title)
	}

	transcript := doJSON(t, s, "GET", "/sessions/"+id, "")
	if got := len(transcript["messages"].([]any)); got != 4 {
		t.Errorf("expected 4 messages, got %d", got)
	}
}

func TestChat_CustomReply(t *testing.T) {
	s := New(WithReply(func(message string) string { return "Echo: " + strings.ToUpper(message) }))
	id := doJSON(t, s, "POST", "/sessions/new", "")["session_id"].(string)

	out := doJSON(t, s, "POST", "/chat", `{"session_id":"`+id+`","message":"hi there"}`)
	if out["response"] != "Echo: HI THERE" {
		t.Errorf("response = %v", out["response"])
	}
}

func TestChat_UnknownSession(t *testing.T) {
	s := New()
	out := doJSON(t, s, "POST", "/chat", `{"session_id":"missing","message":"hi"}`)
	if out["error"] != "Invalid session_id" {
		t.Errorf("error = %v", out["error"])
	}
}

func TestQuiz_FullRunRecordsHistory(t *testing.T) {
	finished := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return finished }))
	doJSON(t, s, "POST", "/quiz/prepare", "")
	first := doJSON(t, s, "POST", "/quiz/generate", `{"status":"ready","profile":{}}`)
	if first["progress"] != "Q1/5" {
		t.Errorf("progress = %v", first["progress"])
	}
	if !strings.HasPrefix(first["text"].(string), "Q1: ") {
		t.Errorf("text = %q", first["text"])
	}

	var last map[string]any
	for i, q := range defaultBank {
		choice := q.Correct + 1
		if i == 0 {
			choice = (q.Correct+1)%len(q.Choices) + 1 // wrong on purpose
		}
		last = doJSON(t, s, "POST", "/quiz/answer", `{"choice":`+itoa(choice)+`}`)
		if i < len(defaultBank)-1 {
			if last["done"] != false {
				t.Fatalf("question %d: expected done=false", i+1)
			}
			doJSON(t, s, "GET", "/quiz/next", "")
		}
	}

	if last["done"] != true {
		t.Fatal("expected done=true after last answer")
	}
	if last["final_score"].(float64) != 4 || last["total"].(float64) != 5 {
		t.Errorf("score = %v/%v", last["final_score"], last["total"])
	}
	if last["accuracy"].(float64) != 80 {
		t.Errorf("accuracy = %v", last["accuracy"])
	}
	if last["level"] != "B" {
		t.Errorf("level = %v", last["level"])
	}

	history := doJSON(t, s, "GET", "/quiz/history", "")["history"].([]any)
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if ts := history[0].(map[string]any)["timestamp"]; ts != "2026-10-19T09:30:00.000000" {
		t.Errorf("timestamp = %v", ts)
	}
	questions := history[0].(map[string]any)["questions"].([]any)
	if questions[0].(map[string]any)["is_correct"] != false {
		t.Error("first answer should be recorded as incorrect")
	}
}

func TestAnswer_IncorrectFeedbackNamesCorrectChoice(t *testing.T) {
	s := New()
	doJSON(t, s, "POST", "/quiz/generate", `{}`)
	out := doJSON(t, s, "POST", "/quiz/answer", `{"choice":1}`)
	want := "Incorrect.\nCorrect answer: 2. goes"
	if out["feedback"] != want {
		t.Errorf("feedback = %q, want %q", out["feedback"], want)
	}
}

func TestAnswer_NoActiveQuiz(t *testing.T) {
	s := New()
	out := doJSON(t, s, "POST", "/quiz/answer", `{"choice":1}`)
	if out["done"] != true || out["feedback"] != "Quiz not active" {
		t.Errorf("unexpected response: %v", out)
	}
}

func TestFail_InjectsStatus(t *testing.T) {
	s := New()
	s.Fail("/quiz/generate", http.StatusInternalServerError)

	req := httptest.NewRequest("POST", "/quiz/generate", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	s.Fail("/quiz/generate", 0)
	doJSON(t, s, "POST", "/quiz/generate", "{}")
}

func TestInvalidate_Counts(t *testing.T) {
	s := New()
	doJSON(t, s, "POST", "/profile/invalidate", "")
	doJSON(t, s, "POST", "/profile/invalidate", "")
	if s.Invalidations() != 2 {
		t.Errorf("Invalidations() = %d", s.Invalidations())
	}
}

func TestDeleteSession(t *testing.T) {
	s := New()
	a := s.SeedSession("a", "first")
	s.SeedSession("b", "second")

	doJSON(t, s, "DELETE", "/sessions/"+a, "")

	ids := s.SessionIDs()
	if len(ids) != 1 || ids[0] != "b" {
		t.Errorf("SessionIDs() = %v", ids)
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
