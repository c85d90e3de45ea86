package modals

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// APIBaseValidator checks a backend base URL typed into the settings form.
type APIBaseValidator func(string) error

// SettingsState is the settings form: theme, backend URL, request timeout and
// desktop notifications.
type SettingsState struct {
	// Bound form values
	selectedTheme        string
	OriginalTheme        string // To detect if theme changed
	apiBase              string
	OriginalAPIBase      string
	NotificationsEnabled bool
	timeoutSeconds       string

	form *huh.Form

	availableWidth int
}

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return WideWidth }

// SetSize updates the available width for rendering content.
func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 && s.availableWidth < WideWidth {
		return s.availableWidth - 10
	}
	return WideWidth - 10
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := pal.Title.Render(s.Title())
	help := pal.Help.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = updateForm(s.form, msg)
	return s, cmd
}

// GetSelectedTheme returns the selected theme key.
func (s *SettingsState) GetSelectedTheme() string {
	return s.selectedTheme
}

// ThemeChanged returns true if the selected theme differs from the original.
func (s *SettingsState) ThemeChanged() bool {
	return s.selectedTheme != s.OriginalTheme
}

// GetAPIBase returns the trimmed backend URL.
func (s *SettingsState) GetAPIBase() string {
	return strings.TrimSpace(s.apiBase)
}

// APIBaseChanged reports whether the backend URL was edited.
func (s *SettingsState) APIBaseChanged() bool {
	return s.GetAPIBase() != s.OriginalAPIBase
}

// GetNotificationsEnabled returns whether notifications are enabled
func (s *SettingsState) GetNotificationsEnabled() bool {
	return s.NotificationsEnabled
}

// GetTimeoutSeconds returns the request timeout, 0 meaning none.
func (s *SettingsState) GetTimeoutSeconds() int {
	n, err := strconv.Atoi(strings.TrimSpace(s.timeoutSeconds))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Validate runs the form's field validators and returns the first failure.
func (s *SettingsState) Validate() error {
	if errs := s.form.Errors(); len(errs) > 0 {
		return errs[0]
	}
	if err := validateTimeout(s.timeoutSeconds); err != nil {
		return err
	}
	return nil
}

type settingsError string

func (e settingsError) Error() string { return string(e) }

func validateTimeout(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return settingsError("timeout must be a whole number of seconds")
	}
	return nil
}

// NewSettingsState builds the settings form. validate checks the backend URL.
func NewSettingsState(themes []string, themeDisplayNames []string, currentTheme string,
	apiBase string, notificationsEnabled bool, timeoutSeconds int,
	validate APIBaseValidator) *SettingsState {

	s := &SettingsState{
		selectedTheme:        currentTheme,
		OriginalTheme:        currentTheme,
		apiBase:              apiBase,
		OriginalAPIBase:      apiBase,
		NotificationsEnabled: notificationsEnabled,
		availableWidth:       WideWidth,
	}
	if timeoutSeconds > 0 {
		s.timeoutSeconds = strconv.Itoa(timeoutSeconds)
	}

	themeOptions := make([]huh.Option[string], len(themes))
	for i := range themes {
		themeOptions[i] = huh.NewOption(themeDisplayNames[i], themes[i])
	}

	apiInput := huh.NewInput().
		Title("Backend URL").
		Description("Base URL of the tutor API").
		Placeholder("http://localhost:8000").
		CharLimit(InputCharLimit).
		Value(&s.apiBase)
	if validate != nil {
		apiInput = apiInput.Validate(func(v string) error {
			return validate(strings.TrimSpace(v))
		})
	}

	s.form = newForm(s.contentWidth(),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&s.selectedTheme),
			apiInput,
			huh.NewInput().
				Title("Request timeout").
				Description("Seconds; empty waits forever").
				Placeholder("0").
				CharLimit(6).
				Validate(validateTimeout).
				Value(&s.timeoutSeconds),
			huh.NewConfirm().
				Title("Desktop notifications").
				Description("Notify when a quiz is ready").
				Affirmative("On").
				Negative("Off").
				Value(&s.NotificationsEnabled),
		),
	)
	return s
}
