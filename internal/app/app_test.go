package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tutor/internal/api"
	"github.com/zhubert/tutor/internal/keys"
	"github.com/zhubert/tutor/internal/state"
)

func TestView_LoadingBeforeSize(t *testing.T) {
	m, _ := testModel(t)
	m.width, m.height = 0, 0

	v := m.View()
	if !v.AltScreen {
		t.Error("expected alt screen")
	}
}

func TestInit_CreatesSessionAndListsNewestFirst(t *testing.T) {
	m, backend := testModel(t)
	backend.SeedSession("old", "Older chat")

	run(t, m, m.Init())

	s := m.State()
	if s.SessionID == "" || s.SessionID == "old" {
		t.Fatalf("expected a fresh session, got %q", s.SessionID)
	}
	if len(s.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(s.Sessions))
	}
	if s.Sessions[0].ID != s.SessionID {
		t.Errorf("expected new session first, got %q", s.Sessions[0].ID)
	}
	if s.Sessions[1].ID != "old" {
		t.Errorf("expected old session last, got %q", s.Sessions[1].ID)
	}
	if s.Mode != state.ModeChat {
		t.Errorf("expected chat mode, got %s", s.Mode)
	}

	out := screen(m)
	assertContains(t, out, "Older chat")
	assertContains(t, out, api.DefaultTitle)
}

func TestInit_BackendDown(t *testing.T) {
	m, backend := testModel(t)
	backend.Fail("/sessions/new", 503)

	run(t, m, m.Init())

	if m.State().SessionID != "" {
		t.Errorf("expected no session, got %q", m.State().SessionID)
	}
	if !m.footer.HasFlash() {
		t.Error("expected an error flash")
	}
}

func TestSendMessage(t *testing.T) {
	m, backend := startedModel(t)
	press(t, m, keys.Tab)
	if !m.isTyping() {
		t.Fatal("expected chat input to have focus")
	}

	m.chat.SetInput("  hello there  ")
	press(t, m, keys.Enter)

	msgs := m.State().Messages
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != api.RoleUser || msgs[0].Text != "hello there" {
		t.Errorf("unexpected user message %+v", msgs[0])
	}
	if msgs[1].Role != api.RoleAssistant || !strings.HasPrefix(msgs[1].Text, `You wrote: "hello there"`) {
		t.Errorf("unexpected reply %+v", msgs[1])
	}
	if m.State().Waiting {
		t.Error("expected waiting to clear after the reply")
	}
	if m.chat.GetInput() != "" {
		t.Errorf("expected input cleared, got %q", m.chat.GetInput())
	}

	// The backend titles the session after the first message
	sess, ok := m.State().ActiveSession()
	if !ok || sess.Title != "hello there" {
		t.Errorf("expected session titled from the first message, got %+v", sess)
	}
	if got := len(backend.SessionIDs()); got != 1 {
		t.Errorf("expected 1 backend session, got %d", got)
	}
}

func TestSendMessage_BlankIsIgnored(t *testing.T) {
	m, _ := startedModel(t)
	press(t, m, keys.Tab)

	m.chat.SetInput("   ")
	press(t, m, keys.Enter)

	if len(m.State().Messages) != 0 {
		t.Errorf("expected no messages, got %d", len(m.State().Messages))
	}
}

func TestSendMessage_KeepsInputWhileWaiting(t *testing.T) {
	m, _ := startedModel(t)
	press(t, m, keys.Tab)

	m.chat.SetInput("first")
	// Dispatch without running the request so the reply stays pending
	_, _ = m.Update(keyPress(keys.Enter))
	if !m.State().Waiting {
		t.Fatal("expected a pending reply")
	}

	m.chat.SetInput("second")
	_, _ = m.Update(keyPress(keys.Enter))

	if got := len(m.State().Messages); got != 1 {
		t.Errorf("expected 1 message, got %d", got)
	}
	if m.chat.GetInput() != "second" {
		t.Errorf("expected input kept, got %q", m.chat.GetInput())
	}
}

func TestSendMessage_FailureFlashes(t *testing.T) {
	m, backend := startedModel(t)
	press(t, m, keys.Tab)
	backend.Fail("/chat", 500)

	m.chat.SetInput("hello")
	press(t, m, keys.Enter)

	if m.State().Waiting {
		t.Error("expected waiting to clear after the failure")
	}
	if !m.footer.HasFlash() {
		t.Error("expected an error flash")
	}
}

func TestShiftEnterInsertsNewline(t *testing.T) {
	m, _ := startedModel(t)
	press(t, m, keys.Tab)

	m.chat.SetInput("line one")
	press(t, m, keys.ShiftEnter)

	if len(m.State().Messages) != 0 {
		t.Error("shift+enter should not send")
	}
	if m.chat.GetInput() != "line one" {
		t.Errorf("unexpected input %q", m.chat.GetInput())
	}
}

func TestTypingQDoesNotQuit(t *testing.T) {
	m, _ := startedModel(t)
	press(t, m, keys.Tab)

	pressOnly(m, "q")

	if m.chat.GetInput() != "q" {
		t.Errorf("expected q typed into input, got %q", m.chat.GetInput())
	}
}

func TestOpenSession_LoadsTranscript(t *testing.T) {
	m, backend := testModel(t)
	backend.SeedSession("s1", "Grammar", "What is a verb?", "A word for an action.")
	run(t, m, m.Init())

	press(t, m, keys.Down)
	if sel, _ := m.sidebar.SelectedSession(); sel.ID != "s1" {
		t.Fatalf("expected s1 selected, got %q", sel.ID)
	}
	press(t, m, keys.Enter)

	s := m.State()
	if s.SessionID != "s1" {
		t.Fatalf("expected s1 active, got %q", s.SessionID)
	}
	if len(s.Messages) != 2 || s.Messages[1].Text != "A word for an action." {
		t.Errorf("unexpected transcript %+v", s.Messages)
	}
	if m.focus != FocusMain {
		t.Error("expected focus on the chat after opening")
	}
	assertContains(t, screen(m), "A word for an action.")
}

func TestOpenSession_DeletedElsewhere(t *testing.T) {
	m, backend := testModel(t)
	backend.SeedSession("s1", "Grammar", "What is a verb?", "A word for an action.")
	run(t, m, m.Init())

	// Another client removes s1 after the sidebar was loaded
	if err := m.client.DeleteSession(context.Background(), "s1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	press(t, m, keys.Down)
	press(t, m, keys.Enter)

	assertContains(t, footerText(m), "That chat no longer exists")
	for _, sess := range m.State().Sessions {
		if sess.ID == "s1" {
			t.Error("expected s1 dropped from the sidebar")
		}
	}
	if m.State().LoadingTranscript {
		t.Error("expected transcript loading cleared")
	}
}

func TestDeleteActiveSession_FallsBackToNewest(t *testing.T) {
	m, backend := testModel(t)
	backend.SeedSession("s1", "First")
	backend.SeedSession("s2", "Second", "hi", "hello")
	run(t, m, m.Init())
	active := m.State().SessionID

	press(t, m, "d")
	if !m.modal.IsVisible() {
		t.Fatal("expected confirm modal")
	}
	press(t, m, "y")
	press(t, m, keys.Enter)

	s := m.State()
	if m.modal.IsVisible() {
		t.Error("expected modal closed")
	}
	for _, id := range backend.SessionIDs() {
		if id == active {
			t.Fatalf("session %q still on backend", active)
		}
	}
	if s.SessionID != "s2" {
		t.Errorf("expected fallback to s2, got %q", s.SessionID)
	}
	if len(s.Messages) != 2 {
		t.Errorf("expected s2 transcript loaded, got %d messages", len(s.Messages))
	}
}

func TestDeleteLastSession_LeavesNoActive(t *testing.T) {
	m, backend := startedModel(t)

	press(t, m, "d")
	press(t, m, "y")
	press(t, m, keys.Enter)

	s := m.State()
	if len(backend.SessionIDs()) != 0 {
		t.Errorf("expected backend empty, got %v", backend.SessionIDs())
	}
	if s.SessionID != "" || len(s.Sessions) != 0 {
		t.Errorf("expected no sessions, got %q %v", s.SessionID, s.Sessions)
	}
	if m.chat.HasSession() {
		t.Error("expected chat without a session")
	}
}

func TestDeleteCancelled(t *testing.T) {
	m, backend := startedModel(t)

	press(t, m, "d")
	press(t, m, keys.Enter) // Cancel is preselected

	if m.modal.IsVisible() {
		t.Error("expected modal closed")
	}
	if len(backend.SessionIDs()) != 1 {
		t.Errorf("expected session kept, got %v", backend.SessionIDs())
	}

	press(t, m, "d")
	press(t, m, "y")
	press(t, m, keys.Escape)
	if len(backend.SessionIDs()) != 1 {
		t.Errorf("escape should cancel, got %v", backend.SessionIDs())
	}
}

func TestNewChat(t *testing.T) {
	m, backend := startedModel(t)
	first := m.State().SessionID

	press(t, m, keys.CtrlN)

	s := m.State()
	if s.SessionID == first || s.SessionID == "" {
		t.Errorf("expected a new session, got %q", s.SessionID)
	}
	if len(backend.SessionIDs()) != 2 || len(s.Sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(s.Sessions))
	}
	if m.focus != FocusMain {
		t.Error("expected chat focused")
	}
	if sel, _ := m.sidebar.SelectedSession(); sel.ID != s.SessionID {
		t.Errorf("sidebar cursor on %q, want the new session %q", sel.ID, s.SessionID)
	}
}

func TestQuizFlow(t *testing.T) {
	m, backend := startedModel(t)
	m.config.SetNotificationsEnabled(true)
	before := len(notificationsSent())

	press(t, m, keys.F2)
	if m.State().Mode != state.ModeQuiz {
		t.Fatalf("expected quiz mode, got %s", m.State().Mode)
	}
	press(t, m, "g")

	q := m.State().Quiz
	if q.Phase != state.QuizActive || q.Question == nil {
		t.Fatalf("expected an active quiz, got %s", q.Phase)
	}
	if q.Question.Progress != "Q1/5" {
		t.Errorf("progress = %q", q.Question.Progress)
	}
	if len(backend.LastProfile()) == 0 {
		t.Error("expected profile forwarded to generate")
	}
	if got := notificationsSent(); len(got) != before+1 {
		t.Errorf("expected a quiz ready notification, got %v", got)
	}

	// First question: 2 is correct
	press(t, m, "2")
	q = m.State().Quiz
	if !q.Answered || q.Result == nil || q.Result.Feedback != "Correct!" {
		t.Fatalf("unexpected result %+v", q.Result)
	}
	assertContains(t, screen(m), "Correct!")

	// Choices are hidden once answered
	press(t, m, "3")
	if q2 := m.State().Quiz; q2.Result.Feedback != "Correct!" {
		t.Errorf("second answer should be ignored, got %q", q2.Result.Feedback)
	}

	for i := 2; i <= 5; i++ {
		press(t, m, keys.Enter)
		q = m.State().Quiz
		if q.Question == nil || q.Answered {
			t.Fatalf("question %d not loaded", i)
		}
		press(t, m, "1")
	}

	q = m.State().Quiz
	if q.Phase != state.QuizCompleted {
		t.Fatalf("expected completed quiz, got %s", q.Phase)
	}
	if !q.Result.Done {
		t.Error("expected done result")
	}
	assertContains(t, screen(m), "Final Score")
}

func TestQuizGeneration_FailureThenRetry(t *testing.T) {
	m, backend := startedModel(t)
	backend.Fail("/quiz/prepare", 500)

	press(t, m, keys.F2)
	press(t, m, "g")

	q := m.State().Quiz
	if q.Phase != state.QuizFailed || q.Failure == "" {
		t.Fatalf("expected failed generation, got %s %q", q.Phase, q.Failure)
	}
	if m.footer.HasFlash() {
		t.Error("generation failures are shown in the quiz view, not flashed")
	}

	backend.Fail("/quiz/prepare", 0)
	press(t, m, "r")

	if m.State().Quiz.Phase != state.QuizActive {
		t.Errorf("expected retry to succeed, got %s", m.State().Quiz.Phase)
	}
}

func TestQuizDigitsNeedMainFocus(t *testing.T) {
	m, _ := startedModel(t)
	press(t, m, keys.F2)
	press(t, m, "g")
	press(t, m, keys.Escape)
	if m.focus != FocusSidebar {
		t.Fatal("expected sidebar focus")
	}

	press(t, m, "2")

	if m.State().Quiz.Answered {
		t.Error("digits should not answer while the sidebar is focused")
	}
}

func TestReview_SummaryAndDetails(t *testing.T) {
	m, backend := startedModel(t)
	backend.SeedHistory("2024-01-01T10:00:00.000000", 3, 5)
	backend.SeedHistory("2024-01-02T10:00:00.000000", 5, 5)

	press(t, m, keys.F3)

	r := m.State().Review
	if !r.Loaded || len(r.History) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(r.History))
	}
	if c, _, _ := r.History[0].Score(); c != 5 {
		t.Errorf("expected newest quiz first, got %d correct", c)
	}
	assertContains(t, screen(m), "Quiz 2")

	press(t, m, keys.Enter)
	r = m.State().Review
	if r.Page != state.ReviewDetails || r.DetailIndex != 0 {
		t.Fatalf("expected details of entry 0, got page %d index %d", r.Page, r.DetailIndex)
	}

	press(t, m, keys.Escape)
	if m.State().Review.Page != state.ReviewSummary {
		t.Error("expected escape to return to the summary")
	}
	if m.State().Mode != state.ModeReview {
		t.Error("expected to stay in review mode")
	}
}

func TestReview_Refresh(t *testing.T) {
	m, backend := startedModel(t)
	press(t, m, keys.F3)
	if len(m.State().Review.History) != 0 {
		t.Fatal("expected empty history")
	}

	backend.SeedHistory("2024-01-01T10:00:00.000000", 1, 2)
	press(t, m, "r")

	if len(m.State().Review.History) != 1 {
		t.Errorf("expected refreshed history, got %d", len(m.State().Review.History))
	}
}

func TestCycleModes(t *testing.T) {
	m, _ := startedModel(t)

	want := []state.Mode{state.ModeQuiz, state.ModeReview, state.ModeChat}
	for _, mode := range want {
		press(t, m, keys.ShiftTab)
		if m.State().Mode != mode {
			t.Errorf("expected %s, got %s", mode, m.State().Mode)
		}
		if m.focus != FocusMain {
			t.Errorf("expected main focus in %s", mode)
		}
	}
}

func TestModeKeysWhileTyping(t *testing.T) {
	m, _ := startedModel(t)
	press(t, m, keys.Tab)
	m.chat.SetInput("draft")

	press(t, m, keys.F3)

	if m.State().Mode != state.ModeReview {
		t.Errorf("expected review mode, got %s", m.State().Mode)
	}
}

func TestEscapeFocusesSidebar(t *testing.T) {
	m, _ := startedModel(t)
	press(t, m, keys.Tab)

	press(t, m, keys.Escape)

	if m.focus != FocusSidebar {
		t.Error("expected sidebar focus")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := startedModel(t)
	press(t, m, keys.Tab)

	_, cmd := m.Update(keyPress(keys.CtrlC))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestShutdown_InvalidatesProfile(t *testing.T) {
	m, backend := startedModel(t)

	m.Shutdown()

	if backend.Invalidations() != 1 {
		t.Errorf("expected 1 invalidation, got %d", backend.Invalidations())
	}
}

func TestStaleChatReplyIgnored(t *testing.T) {
	m, _ := startedModel(t)

	run(t, m, func() tea.Msg {
		return state.ChatReplied{SessionID: "someone-else", Reply: "late"}
	})

	if len(m.State().Messages) != 0 {
		t.Errorf("expected stale reply dropped, got %+v", m.State().Messages)
	}
}
