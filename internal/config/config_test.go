package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zhubert/tutor/internal/errors"
)

// useTempConfigDir points Load and Save at a fresh directory.
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvAPIBase, "")
	return dir
}

func TestLoad_NewConfig(t *testing.T) {
	dir := useTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.GetAPIBase() != DefaultAPIBase {
		t.Errorf("GetAPIBase() = %q, want %q", cfg.GetAPIBase(), DefaultAPIBase)
	}
	if cfg.RequestTimeout() != 0 {
		t.Errorf("expected no timeout by default, got %v", cfg.RequestTimeout())
	}
	if cfg.Path() != filepath.Join(dir, "config.json") {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoad_ExistingConfig(t *testing.T) {
	dir := useTempConfigDir(t)

	configData := `{
		"api_base": "https://tutor.example.com",
		"theme": "nord",
		"notifications_enabled": true,
		"request_timeout_seconds": 30
	}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(configData), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.GetAPIBase() != "https://tutor.example.com" {
		t.Errorf("GetAPIBase() = %q", cfg.GetAPIBase())
	}
	if cfg.GetTheme() != "nord" {
		t.Errorf("GetTheme() = %q", cfg.GetTheme())
	}
	if !cfg.GetNotificationsEnabled() {
		t.Error("expected notifications enabled")
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("RequestTimeout() = %v", cfg.RequestTimeout())
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := useTempConfigDir(t)

	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for malformed config")
	}
	if !errors.Is(err, errors.KindConfig) {
		t.Errorf("expected KindConfig, got %v", errors.GetKind(err))
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv(EnvAPIBase, "http://10.0.0.5:9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.GetAPIBase() != "http://10.0.0.5:9000" {
		t.Errorf("GetAPIBase() = %q, want env override", cfg.GetAPIBase())
	}
	// The persisted value is untouched
	if cfg.APIBase != DefaultAPIBase {
		t.Errorf("APIBase = %q, want default", cfg.APIBase)
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv(EnvAPIBase, "ftp://nope")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for non-http override")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"default", New(), false},
		{"https", &Config{APIBase: "https://api.example.com/v1"}, false},
		{"no scheme", &Config{APIBase: "localhost:8000"}, true},
		{"wrong scheme", &Config{APIBase: "ws://localhost:8000"}, true},
		{"no host", &Config{APIBase: "http://"}, true},
		{"negative timeout", &Config{APIBase: DefaultAPIBase, RequestTimeoutSeconds: -1}, true},
		{"positive timeout", &Config{APIBase: DefaultAPIBase, RequestTimeoutSeconds: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.KindInvalid) {
				t.Errorf("expected KindInvalid, got %v", errors.GetKind(err))
			}
		})
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.SetAPIBase("https://saved.example.com"); err != nil {
		t.Fatalf("SetAPIBase failed: %v", err)
	}
	cfg.SetTheme("dracula")
	cfg.SetNotificationsEnabled(true)

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("second Load() failed: %v", err)
	}
	if loaded.GetAPIBase() != "https://saved.example.com" {
		t.Errorf("GetAPIBase() = %q", loaded.GetAPIBase())
	}
	if loaded.GetTheme() != "dracula" {
		t.Errorf("GetTheme() = %q", loaded.GetTheme())
	}
	if !loaded.GetNotificationsEnabled() {
		t.Error("expected notifications enabled after reload")
	}
}

func TestConfig_OverrideIsNotSaved(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.OverrideAPIBase("http://127.0.0.1:1234"); err != nil {
		t.Fatalf("OverrideAPIBase failed: %v", err)
	}
	if cfg.GetAPIBase() != "http://127.0.0.1:1234" {
		t.Errorf("GetAPIBase() = %q", cfg.GetAPIBase())
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.GetAPIBase() != DefaultAPIBase {
		t.Errorf("override leaked to disk: %q", loaded.GetAPIBase())
	}
}

func TestConfig_SetAPIBaseRejectsInvalid(t *testing.T) {
	cfg := New()
	if err := cfg.SetAPIBase("not a url"); err == nil {
		t.Error("expected error for invalid URL")
	}
	if cfg.GetAPIBase() != DefaultAPIBase {
		t.Errorf("invalid value should not be stored, got %q", cfg.GetAPIBase())
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	if err := os.WriteFile(".env", []byte("TUTOR_TEST_DOTENV=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv("TUTOR_TEST_DOTENV")
	t.Cleanup(func() { os.Unsetenv("TUTOR_TEST_DOTENV") })

	LoadDotEnv()

	if got := os.Getenv("TUTOR_TEST_DOTENV"); got != "from-file" {
		t.Errorf("TUTOR_TEST_DOTENV = %q, want from-file", got)
	}
}
