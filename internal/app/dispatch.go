package app

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tutor/internal/errors"
	"github.com/zhubert/tutor/internal/logger"
	"github.com/zhubert/tutor/internal/notification"
	"github.com/zhubert/tutor/internal/state"
)

// dispatch runs a through the reducer, refreshes the views and turns the
// resulting effects into commands. Backend results come back to Update as
// actions and are dispatched in turn.
func (m *Model) dispatch(a state.Action) tea.Cmd {
	log := logger.WithComponent("app")
	prev := m.state

	next, effects := state.Reduce(m.state, a)
	m.state = next
	log.Debug("dispatched", "action", actionName(a), "effects", len(effects), "mode", next.Mode.String())

	m.syncViews()

	if next.Mode != prev.Mode {
		m.setFocus(m.focus)
	}

	cmds := make([]tea.Cmd, 0, len(effects)+3)
	for _, e := range effects {
		cmds = append(cmds, m.runEffect(e))
	}

	if f, ok := a.(state.Failed); ok {
		cmds = append(cmds, m.handleFailure(f))
	}
	if prev.Quiz.Phase == state.QuizGenerating && next.Quiz.Phase == state.QuizActive {
		cmds = append(cmds, m.notifyQuizReady())
	}
	cmds = append(cmds, m.startTicking())

	return tea.Batch(cmds...)
}

// handleFailure logs a failed backend call and surfaces it in the footer.
// Quiz generation failures are shown by the quiz view instead.
func (m *Model) handleFailure(f state.Failed) tea.Cmd {
	logger.WithComponent("app").Error("backend call failed", "effect", effectName(f.Cause), "error", f.Err)
	switch f.Cause.(type) {
	case state.PrepareProfile, state.GenerateFromProfile:
		return nil
	case state.FetchTranscript:
		if errors.Is(f.Err, errors.KindNotFound) {
			// Deleted elsewhere; refresh so it drops out of the sidebar
			return tea.Batch(m.ShowFlashWarning("That chat no longer exists"), m.runEffect(state.LoadSessions{}))
		}
	}
	return m.flashForError(f.Err)
}

func (m *Model) notifyQuizReady() tea.Cmd {
	if !m.config.GetNotificationsEnabled() || m.state.Quiz.Question == nil {
		return nil
	}
	progress := m.state.Quiz.Question.Progress
	return func() tea.Msg {
		// Failures are logged by the notification package
		_ = notification.QuizReady(progress)
		return nil
	}
}

// call runs fn in a command and reports its action, or Failed with cause.
func (m *Model) call(cause state.Effect, fn func(ctx context.Context) (state.Action, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		a, err := fn(ctx)
		if err != nil {
			return state.Failed{Cause: cause, Err: err}
		}
		return a
	}
}

// runEffect maps an effect to the backend call that fulfils it.
func (m *Model) runEffect(e state.Effect) tea.Cmd {
	client := m.client

	switch e := e.(type) {
	case state.CreateSession:
		return m.call(e, func(ctx context.Context) (state.Action, error) {
			id, err := client.CreateSession(ctx)
			return state.SessionCreated{ID: id}, err
		})

	case state.LoadSessions:
		return m.call(e, func(ctx context.Context) (state.Action, error) {
			sessions, err := client.ListSessions(ctx)
			return state.SessionsLoaded{Sessions: sessions}, err
		})

	case state.FetchTranscript:
		return m.call(e, func(ctx context.Context) (state.Action, error) {
			t, err := client.GetTranscript(ctx, e.ID)
			return state.TranscriptLoaded{ID: e.ID, Messages: t.Messages}, err
		})

	case state.DeleteSession:
		return m.call(e, func(ctx context.Context) (state.Action, error) {
			if err := client.DeleteSession(ctx, e.ID); err != nil {
				return nil, err
			}
			sessions, err := client.ListSessions(ctx)
			return state.SessionDeleted{ID: e.ID, Sessions: sessions}, err
		})

	case state.PostChat:
		return m.call(e, func(ctx context.Context) (state.Action, error) {
			reply, err := client.Chat(ctx, e.SessionID, e.Text)
			return state.ChatReplied{SessionID: e.SessionID, Reply: reply}, err
		})

	case state.PrepareProfile:
		return m.call(e, func(ctx context.Context) (state.Action, error) {
			profile, err := client.PrepareProfile(ctx)
			return state.ProfileReady{Profile: profile}, err
		})

	case state.GenerateFromProfile:
		return m.call(e, func(ctx context.Context) (state.Action, error) {
			q, err := client.GenerateQuiz(ctx, e.Profile)
			return state.QuizGenerated{Question: q}, err
		})

	case state.SubmitAnswer:
		return m.call(e, func(ctx context.Context) (state.Action, error) {
			r, err := client.Answer(ctx, e.Choice)
			return state.AnswerGraded{Result: r}, err
		})

	case state.FetchNextQuestion:
		return m.call(e, func(ctx context.Context) (state.Action, error) {
			q, err := client.NextQuestion(ctx)
			return state.QuestionLoaded{Question: q}, err
		})

	case state.LoadHistory:
		return m.call(e, func(ctx context.Context) (state.Action, error) {
			h, err := client.History(ctx)
			return state.HistoryLoaded{Seq: e.Seq, History: h}, err
		})

	case state.LoadHistoryDetail:
		return m.call(e, func(ctx context.Context) (state.Action, error) {
			h, err := client.History(ctx)
			return state.DetailsLoaded{Seq: e.Seq, Index: e.Index, History: h}, err
		})
	}

	logger.WithComponent("app").Warn("unhandled effect", "effect", effectName(e))
	return nil
}

func actionName(a state.Action) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", a), "state.")
}

func effectName(e state.Effect) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", e), "state.")
}
