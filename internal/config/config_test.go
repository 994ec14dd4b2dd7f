package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/playperu/quizdesk/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
	if cfg.WorkspaceTTL != 2*time.Hour {
		t.Errorf("WorkspaceTTL = %v, want 2h", cfg.WorkspaceTTL)
	}
	if got := cfg.MaxUploadBytes(); got != 16<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", got, 16<<20)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("CORSOrigins = %v, want empty", cfg.CORSOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("WORKSPACE_TTL", "15m")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173,https://quiz.example.com")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.WorkspaceTTL != 15*time.Minute {
		t.Errorf("WorkspaceTTL = %v", cfg.WorkspaceTTL)
	}
	if cfg.MaxUploadBytes() != 2<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes())
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://quiz.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"MAX_UPLOAD_MB":  "0",
		"IMPORT_WORKERS": "-1",
		"WORKSPACE_TTL":  "soon",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := config.Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, val)
			}
		})
	}
}
