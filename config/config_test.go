package config

import (
	"testing"
	"time"
)

func clearResearchEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"SEARCH_FILE", "RESULTS_DIR",
		"GOOGLE_SHOPPING_URL", "MERCADO_LIVRE_URL", "AMAZON_URL",
		"CHROMIUM_BIN", "SCROLL_PAUSE_MS", "ELEMENT_WAIT_SECONDS", "NAV_TIMEOUT_SECONDS",
		"RESEARCH_CRON", "RUN_ON_START",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD",
		"EMAIL_FROM", "EMAIL_FROM_NAME", "EMAIL_TO",
		"HOST", "PORT", "ALLOWED_ORIGINS", "RATE_LIMIT_RPS", "ADMIN_API_KEY",
		"LOG_DIR", "LOG_FORMAT", "LOG_LEVEL",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearResearchEnv(t)

	cfg := Load()

	if cfg.SearchFile != "data_base/search.xlsx" {
		t.Errorf("SearchFile = %q, want data_base/search.xlsx", cfg.SearchFile)
	}
	if cfg.ResultsDir != "results" {
		t.Errorf("ResultsDir = %q, want results", cfg.ResultsDir)
	}
	if cfg.GoogleShoppingURL != "https://www.google.com" {
		t.Errorf("GoogleShoppingURL = %q", cfg.GoogleShoppingURL)
	}
	if cfg.ScrollPause != 100*time.Millisecond {
		t.Errorf("ScrollPause = %v, want 100ms", cfg.ScrollPause)
	}
	if cfg.ElementWait != 10*time.Second {
		t.Errorf("ElementWait = %v, want 10s", cfg.ElementWait)
	}
	if cfg.ResearchCron != "0 0 */12 * * *" {
		t.Errorf("ResearchCron = %q", cfg.ResearchCron)
	}
	if cfg.RunOnStart {
		t.Error("RunOnStart should default to false")
	}
	if cfg.Mail.Port != 587 {
		t.Errorf("Mail.Port = %d, want 587", cfg.Mail.Port)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.RateLimitRPS != 5 {
		t.Errorf("RateLimitRPS = %v, want 5", cfg.RateLimitRPS)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearResearchEnv(t)
	t.Setenv("SEARCH_FILE", "/tmp/criteria.xlsx")
	t.Setenv("SCROLL_PAUSE_MS", "250")
	t.Setenv("ELEMENT_WAIT_SECONDS", "3")
	t.Setenv("RUN_ON_START", "true")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg := Load()

	if cfg.SearchFile != "/tmp/criteria.xlsx" {
		t.Errorf("SearchFile = %q", cfg.SearchFile)
	}
	if cfg.ScrollPause != 250*time.Millisecond {
		t.Errorf("ScrollPause = %v, want 250ms", cfg.ScrollPause)
	}
	if cfg.ElementWait != 3*time.Second {
		t.Errorf("ElementWait = %v, want 3s", cfg.ElementWait)
	}
	if !cfg.RunOnStart {
		t.Error("RunOnStart should be true")
	}
	if cfg.Mail.Port != 2525 {
		t.Errorf("Mail.Port = %d, want 2525", cfg.Mail.Port)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("RateLimitRPS = %v, want 2.5", cfg.RateLimitRPS)
	}
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	clearResearchEnv(t)
	t.Setenv("SCROLL_PAUSE_MS", "not-a-number")
	t.Setenv("RATE_LIMIT_RPS", "fast")

	cfg := Load()

	if cfg.ScrollPause != 100*time.Millisecond {
		t.Errorf("ScrollPause = %v, want default 100ms", cfg.ScrollPause)
	}
	if cfg.RateLimitRPS != 5 {
		t.Errorf("RateLimitRPS = %v, want default 5", cfg.RateLimitRPS)
	}
}

func TestMailConfigIsConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  MailConfig
		want bool
	}{
		{"empty", MailConfig{}, false},
		{"complete", MailConfig{Host: "smtp.example.com", From: "a@b.c", To: "d@e.f"}, true},
		{"missing recipient", MailConfig{Host: "smtp.example.com", From: "a@b.c"}, false},
		{"missing host", MailConfig{From: "a@b.c", To: "d@e.f"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsConfigured(); got != tt.want {
				t.Errorf("IsConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}
