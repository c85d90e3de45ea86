package modals

import (
	"errors"
	"strings"
	"testing"
)

func newTestSettings(apiBase string, timeout int) *SettingsState {
	return NewSettingsState(
		[]string{"dark-purple", "nord"},
		[]string{"Dark Purple", "Nord"},
		"nord",
		apiBase,
		true,
		timeout,
		func(v string) error {
			if !strings.HasPrefix(v, "http") {
				return errors.New("must be an http(s) URL")
			}
			return nil
		},
	)
}

func TestNewSettingsState_InitialValues(t *testing.T) {
	s := newTestSettings("http://localhost:8000", 30)

	if s.GetSelectedTheme() != "nord" {
		t.Errorf("theme = %q, want nord", s.GetSelectedTheme())
	}
	if s.ThemeChanged() {
		t.Error("ThemeChanged should be false initially")
	}
	if s.GetAPIBase() != "http://localhost:8000" {
		t.Errorf("api base = %q", s.GetAPIBase())
	}
	if s.APIBaseChanged() {
		t.Error("APIBaseChanged should be false initially")
	}
	if !s.GetNotificationsEnabled() {
		t.Error("notifications should be enabled")
	}
	if s.GetTimeoutSeconds() != 30 {
		t.Errorf("timeout = %d, want 30", s.GetTimeoutSeconds())
	}
}

func TestSettingsState_NoTimeoutIsZero(t *testing.T) {
	s := newTestSettings("http://localhost:8000", 0)
	if s.timeoutSeconds != "" {
		t.Errorf("zero timeout should leave the field empty, got %q", s.timeoutSeconds)
	}
	if s.GetTimeoutSeconds() != 0 {
		t.Errorf("timeout = %d, want 0", s.GetTimeoutSeconds())
	}
}

func TestSettingsState_ChangeDetection(t *testing.T) {
	s := newTestSettings("http://localhost:8000", 0)

	s.selectedTheme = "dark-purple"
	if !s.ThemeChanged() {
		t.Error("ThemeChanged should be true after picking another theme")
	}

	s.apiBase = "  http://tutor.example:9000  "
	if !s.APIBaseChanged() {
		t.Error("APIBaseChanged should be true after editing the URL")
	}
	if s.GetAPIBase() != "http://tutor.example:9000" {
		t.Errorf("api base should be trimmed, got %q", s.GetAPIBase())
	}
}

func TestValidateTimeout(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"0", false},
		{" 45 ", false},
		{"-1", true},
		{"soon", true},
		{"1.5", true},
	}
	for _, tt := range tests {
		err := validateTimeout(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateTimeout(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestSettingsState_ValidateRejectsBadTimeout(t *testing.T) {
	s := newTestSettings("http://localhost:8000", 0)
	s.timeoutSeconds = "later"

	if err := s.Validate(); err == nil {
		t.Error("Validate should reject a non-numeric timeout")
	}
	if s.GetTimeoutSeconds() != 0 {
		t.Error("An invalid timeout should read as none")
	}
}

func TestSettingsState_Render(t *testing.T) {
	s := newTestSettings("http://localhost:8000", 0)
	s.SetSize(80, 30)

	rendered := s.Render()
	for _, want := range []string{"Settings", "Theme", "Backend URL", "Request timeout", "Desktop notifications"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Expected %q in settings form, got:\n%s", want, rendered)
		}
	}
	if s.PreferredWidth() != WideWidth {
		t.Errorf("PreferredWidth = %d, want %d", s.PreferredWidth(), WideWidth)
	}
}

func TestSettingsState_EnterAndEscapeAreLeftToTheApp(t *testing.T) {
	s := newTestSettings("http://localhost:8000", 0)

	if _, cmd := s.Update(keyPress("enter")); cmd != nil {
		t.Error("Enter should not reach the form")
	}
	if _, cmd := s.Update(keyPress("esc")); cmd != nil {
		t.Error("Escape should not reach the form")
	}
}
