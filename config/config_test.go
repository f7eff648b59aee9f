package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config should validate, got %v", err)
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(`
[movement]
mode = "oscillate"
death_motion = "slide"

[speed]
mode = "progressive"
max = 30.0

[spawner]
delay = "2s"
easy = ["cone"]
hard = []

[spawner.sway.cone]
amplitude = 0.5
angular_speed = 2.0

[life]
initial_lives = 5
`)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if cfg.Movement.Mode != MovementOscillate {
		t.Errorf("Expected oscillate mode, got %q", cfg.Movement.Mode)
	}
	if cfg.Movement.DeathMotion != DeathSlide {
		t.Errorf("Expected slide death motion, got %q", cfg.Movement.DeathMotion)
	}
	if cfg.Speed.Mode != SpeedProgressive || cfg.Speed.Max != 30.0 {
		t.Errorf("Speed not decoded: %+v", cfg.Speed)
	}
	if cfg.Spawner.Delay != 2*time.Second {
		t.Errorf("Expected 2s delay, got %v", cfg.Spawner.Delay)
	}
	if len(cfg.Spawner.Easy) != 1 || len(cfg.Spawner.Hard) != 0 {
		t.Errorf("Obstacle sets not decoded: easy=%v hard=%v", cfg.Spawner.Easy, cfg.Spawner.Hard)
	}
	if sw := cfg.Spawner.Sway["cone"]; sw.Amplitude != 0.5 || sw.AngularSpeed != 2.0 {
		t.Errorf("Sway not decoded: %+v", cfg.Spawner.Sway)
	}
	if _, ok := cfg.Spawner.Sway["spinner"]; !ok {
		t.Error("Default spinner sway should survive a file that adds kinds")
	}
	if cfg.Life.InitialLives != 5 {
		t.Errorf("Expected 5 lives, got %d", cfg.Life.InitialLives)
	}
	// Untouched sections keep defaults
	if cfg.Spawner.Spacing != 65.0 {
		t.Errorf("Expected default spacing 65, got %v", cfg.Spawner.Spacing)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown movement", func(c *Config) { c.Movement.Mode = "teleport" }},
		{"unknown speed mode", func(c *Config) { c.Speed.Mode = "warp" }},
		{"unknown death motion", func(c *Config) { c.Movement.DeathMotion = "explode" }},
		{"max below base", func(c *Config) { c.Speed.Max = c.Speed.Base - 1 }},
		{"no easy obstacles", func(c *Config) { c.Spawner.Easy = nil }},
		{"zero spacing", func(c *Config) { c.Spawner.Spacing = 0 }},
		{"zero lives", func(c *Config) { c.Life.InitialLives = 0 }},
		{"zero cull interval", func(c *Config) { c.Spawner.CullInterval = 0 }},
		{"zero countdown", func(c *Config) { c.Life.ReviveCountdown = 0 }},
		{"negative sway", func(c *Config) { c.Spawner.Sway = map[string]SwayConfig{"cone": {Amplitude: -0.5}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"LANE_RUNNER_SPEED_MODE":     "PROGRESSIVE",
		"LANE_RUNNER_LIVES":          "1",
		"LANE_RUNNER_AUDIO_ENABLED":  "false",
		"LANE_RUNNER_MASTER_VOLUME":  "150",
		"LANE_RUNNER_REVIVE_ENABLED": "0",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Speed.Mode != SpeedProgressive {
		t.Errorf("Expected progressive, got %q", cfg.Speed.Mode)
	}
	if cfg.Life.InitialLives != 1 {
		t.Errorf("Expected 1 life, got %d", cfg.Life.InitialLives)
	}
	if cfg.Audio.Enabled {
		t.Error("Expected audio disabled")
	}
	if cfg.Audio.Volume != 1.0 {
		t.Errorf("Expected volume clamped to 1.0, got %v", cfg.Audio.Volume)
	}
	if cfg.Life.ReviveEnabled {
		t.Error("Expected revive disabled")
	}
}

func TestApplyEnvMalformed(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "LANE_RUNNER_LIVES" {
			return "three", true
		}
		return "", false
	}
	if err := Default().ApplyEnv(lookup); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for malformed lives, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.toml")
	if err := os.WriteFile(path, []byte("[spawner]\nspacing = 80.0\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Spawner.Spacing != 80.0 {
		t.Errorf("Expected spacing 80, got %v", cfg.Spawner.Spacing)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.toml")
	if err := os.WriteFile(path, []byte("[spawner]\nspacnig = 80.0\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for misspelled key, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
