package daemon

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7420 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7420)
	}
	if cfg.XP.Message != 10 || cfg.XP.PracticeMinute != 2 || cfg.XP.Quiz != 25 {
		t.Errorf("XP rates = %+v, want 10/2/25", cfg.XP)
	}
	if !cfg.Challenges.Enabled {
		t.Error("Challenges.Enabled should default to true")
	}
	if cfg.Notifications.MaxPerDay != 3 {
		t.Errorf("Notifications.MaxPerDay = %d, want 3", cfg.Notifications.MaxPerDay)
	}
	if cfg.Notifications.QuietStart != "22:00" || cfg.Notifications.QuietEnd != "08:00" {
		t.Errorf("quiet hours = %s-%s, want 22:00-08:00", cfg.Notifications.QuietStart, cfg.Notifications.QuietEnd)
	}
	if cfg.Telemetry.Prometheus {
		t.Error("Telemetry.Prometheus should default to false")
	}
}

func TestLoadConfig_RoundTrip(t *testing.T) {
	t.Setenv("LINGUA_HOME", t.TempDir())

	// No file yet: defaults.
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != 7420 {
		t.Errorf("API.Port = %d, want default 7420", cfg.API.Port)
	}

	cfg.API.Port = 9999
	cfg.XP.Quiz = 40
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.API.Port != 9999 {
		t.Errorf("API.Port = %d, want 9999", loaded.API.Port)
	}
	if loaded.XP.Quiz != 40 {
		t.Errorf("XP.Quiz = %d, want 40", loaded.XP.Quiz)
	}
}
