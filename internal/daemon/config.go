// Package daemon manages the Lingua daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API           APIConfig           `toml:"api"`
	Storage       StorageConfig       `toml:"storage"`
	XP            XPConfig            `toml:"xp"`
	Challenges    ChallengesConfig    `toml:"challenges"`
	Notifications NotificationsConfig `toml:"notifications"`
	Telemetry     TelemetryConfig     `toml:"telemetry"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// StorageConfig controls where engine state lives.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// XPConfig maps raw activity to experience points.
type XPConfig struct {
	Message        int `toml:"message"`
	PracticeMinute int `toml:"practice_minute"`
	Quiz           int `toml:"quiz"`
}

// ChallengesConfig controls weekly challenge generation.
type ChallengesConfig struct {
	Enabled bool `toml:"enabled"`
}

// NotificationsConfig controls the notification policy.
type NotificationsConfig struct {
	Enabled    bool   `toml:"enabled"`
	MaxPerDay  int    `toml:"max_per_day"`
	QuietStart string `toml:"quiet_start"`
	QuietEnd   string `toml:"quiet_end"`
}

// TelemetryConfig controls metrics exposure.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7420,
			CORSOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			Dir: linguaHome(),
		},
		XP: XPConfig{
			Message:        10,
			PracticeMinute: 2,
			Quiz:           25,
		},
		Challenges: ChallengesConfig{
			Enabled: true,
		},
		Notifications: NotificationsConfig{
			Enabled:    true,
			MaxPerDay:  3,
			QuietStart: "22:00",
			QuietEnd:   "08:00",
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
	}
}

// LoadConfig reads config from ~/.lingua/config.toml, falling back to
// defaults when no file exists.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(linguaHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.lingua/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(linguaHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// linguaHome returns the Lingua data directory.
func linguaHome() string {
	if env := os.Getenv("LINGUA_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lingua")
}

// LinguaHome is exported for use by other packages.
func LinguaHome() string {
	return linguaHome()
}
