package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MAIL_CHUNK_SIZE", "")
	t.Setenv("MAIL_CHUNK_DELAY", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DB_PORT", "")

	cfg := Load()

	if cfg.ChunkSize != 150 {
		t.Errorf("expected default chunk size 150, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkDelay != 5*time.Second {
		t.Errorf("expected default chunk delay 5s, got %s", cfg.ChunkDelay)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.HTTPPort != "3000" {
		t.Errorf("expected default port 3000, got %q", cfg.HTTPPort)
	}
	if cfg.DB.Port != "5432" {
		t.Errorf("expected default db port 5432, got %q", cfg.DB.Port)
	}
}

func TestLoadNotificationListsDropEmptySlots(t *testing.T) {
	t.Setenv("NOTIFICATION_TO_EMAIL1", "a@team.example")
	t.Setenv("NOTIFICATION_TO_EMAIL2", "")
	t.Setenv("NOTIFICATION_TO_EMAIL3", "c@team.example")
	t.Setenv("NOTIFICATION_CC_EMAIL1", "")
	t.Setenv("NOTIFICATION_CC_EMAIL2", "cc@team.example")

	cfg := Load()

	if len(cfg.Notification.To) != 2 {
		t.Fatalf("expected 2 TO recipients, got %v", cfg.Notification.To)
	}
	if cfg.Notification.To[0] != "a@team.example" || cfg.Notification.To[1] != "c@team.example" {
		t.Errorf("unexpected TO list: %v", cfg.Notification.To)
	}
	if len(cfg.Notification.CC) != 1 || cfg.Notification.CC[0] != "cc@team.example" {
		t.Errorf("unexpected CC list: %v", cfg.Notification.CC)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MAIL_CHUNK_SIZE", "50")
	t.Setenv("MAIL_CHUNK_DELAY", "2s")

	cfg := Load()

	if cfg.ChunkSize != 50 {
		t.Errorf("expected chunk size 50, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkDelay != 2*time.Second {
		t.Errorf("expected chunk delay 2s, got %s", cfg.ChunkDelay)
	}
}
