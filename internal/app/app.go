package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tutor/internal/api"
	"github.com/zhubert/tutor/internal/config"
	"github.com/zhubert/tutor/internal/logger"
	"github.com/zhubert/tutor/internal/state"
	"github.com/zhubert/tutor/internal/ui"
)

// ShutdownGrace bounds how long Shutdown waits for the exit beacon.
const ShutdownGrace = 500 * time.Millisecond

// Timer commands, replaced in tests.
var (
	flashTick     = ui.FlashTick
	stopwatchTick = ui.StopwatchTick
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusMain
)

func (f Focus) String() string {
	if f == FocusMain {
		return "main"
	}
	return "sidebar"
}

// Model is the main application model
type Model struct {
	config *config.Config
	client *api.Client
	ctx    context.Context

	state state.State

	header    *ui.Header
	footer    *ui.Footer
	sidebar   *ui.Sidebar
	chat      *ui.Chat
	quiz      *ui.Quiz
	review    *ui.Review
	modal     *ui.Modal
	logViewer *ui.LogViewer

	width  int
	height int
	focus  Focus

	// showLogs replaces the main area with the log viewer
	showLogs bool

	// ticking is set while a StopwatchTick chain is in flight
	ticking bool
}

// New creates a new app model. A nil client is built from cfg.
func New(cfg *config.Config, client *api.Client) *Model {
	if client == nil {
		client = newClient(cfg)
	}

	if theme := cfg.GetTheme(); theme != "" && ui.IsThemeName(theme) {
		ui.SetThemeByName(theme)
	}

	m := &Model{
		config:    cfg,
		client:    client,
		ctx:       context.Background(),
		state:     state.New(),
		header:    ui.NewHeader(),
		footer:    ui.NewFooter(),
		sidebar:   ui.NewSidebar(),
		chat:      ui.NewChat(),
		quiz:      ui.NewQuiz(),
		review:    ui.NewReview(),
		modal:     ui.NewModal(),
		logViewer: ui.NewLogViewer(ui.LogPath()),
		focus:     FocusSidebar,
	}
	m.sidebar.SetFocused(true)
	m.syncViews()
	return m
}

func newClient(cfg *config.Config) *api.Client {
	return api.New(cfg.GetAPIBase(), api.WithTimeout(cfg.RequestTimeout()))
}

// Client returns the backend client in use.
func (m *Model) Client() *api.Client {
	return m.client
}

// State returns the current UI state.
func (m *Model) State() state.State {
	return m.state
}

// Init starts the client: a fresh session is created and the session list loaded.
func (m *Model) Init() tea.Cmd {
	logger.WithComponent("app").Info("starting", "api", m.client.BaseURL())
	return m.dispatch(state.Init{})
}

// Shutdown tells the backend to drop its cached profile and waits at most
// ShutdownGrace for the request to finish.
func (m *Model) Shutdown() {
	done := m.client.InvalidateProfile()
	select {
	case <-done:
	case <-time.After(ShutdownGrace):
		logger.WithComponent("app").Debug("exit beacon still in flight")
	}
}

// isTyping reports whether plain keys belong to the chat input.
func (m *Model) isTyping() bool {
	return m.focus == FocusMain && m.state.Mode == state.ModeChat && m.chat.HasSession()
}

// setFocus moves focus to f. Only the view of the current mode takes
// focus on the main side.
func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.sidebar.SetFocused(f == FocusSidebar)
	main := f == FocusMain
	m.chat.SetFocused(main && m.state.Mode == state.ModeChat)
	m.quiz.SetFocused(main && m.state.Mode == state.ModeQuiz)
	m.review.SetFocused(main && m.state.Mode == state.ModeReview)
	m.updateFooterContext()
}

func (m *Model) toggleFocus() {
	if m.focus == FocusSidebar {
		m.setFocus(FocusMain)
	} else {
		m.setFocus(FocusSidebar)
	}
}

// syncViews pushes the current state into every view.
func (m *Model) syncViews() {
	s := m.state

	m.header.SetMode(s.Mode)
	title := ""
	if sess, ok := s.ActiveSession(); ok {
		title = sess.DisplayTitle()
	}
	m.header.SetSessionTitle(title)

	m.sidebar.SetSessions(s.Sessions, s.SessionID)

	m.chat.SetHasSession(s.SessionID != "")
	m.chat.SetMessages(s.Messages)
	m.chat.SetWaiting(s.Waiting)

	m.quiz.SetState(s.Quiz)
	m.review.SetState(s.Review)

	m.updateFooterContext()
}

func (m *Model) updateFooterContext() {
	m.footer.SetContext(ui.FooterContext{
		Mode:           m.state.Mode,
		SidebarFocused: m.focus == FocusSidebar,
		HasSession:     m.state.SessionID != "",
		Quiz:           m.state.Quiz,
		Review:         m.state.Review,
	})
}

// animating reports whether any view needs spinner frames.
func (m *Model) animating() bool {
	return m.state.Waiting || m.quiz.IsAnimating()
}

// startTicking starts the spinner tick chain unless one is already running.
func (m *Model) startTicking() tea.Cmd {
	if m.ticking || !m.animating() {
		return nil
	}
	m.ticking = true
	return stopwatchTick()
}

func (m *Model) updateSizes() {
	l := ui.NewLayout(m.width, m.height)

	m.header.SetWidth(l.Width)
	m.footer.SetWidth(l.Width)
	m.sidebar.SetSize(l.SidebarWidth, l.ContentHeight)
	m.chat.SetSize(l.MainWidth, l.ContentHeight)
	m.quiz.SetSize(l.MainWidth, l.ContentHeight)
	m.review.SetSize(l.MainWidth, l.ContentHeight)
	m.logViewer.SetSize(l.Width, l.ContentHeight)
}
