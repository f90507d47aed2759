package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseSnake(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("embedded YAML drifted from DefaultSnakeConfig:\n got %+v\nwant %+v", cfg, DefaultSnakeConfig())
	}
}

func TestLoadSnakeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("grid:\n  size: 20\ntwists:\n  portal:\n    min_separation: 6\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.Grid.Size != 20 {
		t.Errorf("grid.size = %d, want 20", cfg.Grid.Size)
	}
	if cfg.Twists.Portal.MinSeparation != 6 {
		t.Errorf("portal.min_separation = %d, want 6", cfg.Twists.Portal.MinSeparation)
	}
	// Untouched keys keep defaults, including inlined timing fields
	if cfg.Twists.Portal.DurationMs != 8000 {
		t.Errorf("portal.duration_ms = %d, want default 8000", cfg.Twists.Portal.DurationMs)
	}
	if cfg.Speed.InitialMs != 150 {
		t.Errorf("speed.initial_ms = %d, want default 150", cfg.Speed.InitialMs)
	}
}

func TestLoadSnakeErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnake(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("speed:\n  initial_ms: 10\n  min_ms: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(bad); err == nil {
		t.Error("expected validation error when initial_ms < min_ms")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SnakeConfig)
		wantErr bool
	}{
		{"defaults", func(*SnakeConfig) {}, false},
		{"tiny grid", func(c *SnakeConfig) { c.Grid.Size = 3 }, true},
		{"zero floor", func(c *SnakeConfig) { c.Speed.MinMs = 0 }, true},
		{"chance above one", func(c *SnakeConfig) { c.Twists.Blur.Chance = 1.5 }, true},
		{"negative chance", func(c *SnakeConfig) { c.Twists.Shrink.Chance = -0.1 }, true},
		{"zero multiplier", func(c *SnakeConfig) { c.Twists.SpeedBoost.Multiplier = 0 }, true},
		{"margin fills grid", func(c *SnakeConfig) { c.Grid.Size = 10; c.Twists.Shrink.Margin = 5 }, true},
		{"margin leaves one row", func(c *SnakeConfig) { c.Grid.Size = 11; c.Twists.Shrink.Margin = 5 }, false},
		{"negative margin", func(c *SnakeConfig) { c.Twists.Shrink.Margin = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplySnakePreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantInitial int
		wantChance  float64 // speed boost chance
	}{
		{DifficultyEasy, 180, 0.2 * 0.6},
		{DifficultyNormal, 150, 0.2},
		{DifficultyHard, 110, 0.2 * 1.4},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			ApplySnakePreset(&cfg, tt.preset)

			if cfg.Speed.InitialMs != tt.wantInitial {
				t.Errorf("initial_ms = %d, want %d", cfg.Speed.InitialMs, tt.wantInitial)
			}
			if diff := cfg.Twists.SpeedBoost.Chance - tt.wantChance; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("speed boost chance = %v, want %v", cfg.Twists.SpeedBoost.Chance, tt.wantChance)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestApplySnakePresetClampsChance(t *testing.T) {
	cfg := DefaultSnakeConfig()
	cfg.Twists.Obstacle.Chance = 0.9
	ApplySnakePreset(&cfg, DifficultyHard)
	if cfg.Twists.Obstacle.Chance != 1.0 {
		t.Errorf("chance = %v, want clamped to 1", cfg.Twists.Obstacle.Chance)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := map[string]DifficultyPreset{
		"easy":   DifficultyEasy,
		"normal": DifficultyNormal,
		"hard":   DifficultyHard,
		"":       DifficultyNormal,
		"insane": DifficultyNormal,
	}
	for in, want := range tests {
		if got := ParseDifficulty(in); got != want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", in, got, want)
		}
	}

	if DifficultyEasy.Next() != DifficultyNormal || DifficultyHard.Next() != DifficultyEasy {
		t.Error("Next() should cycle easy -> normal -> hard -> easy")
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultSnakeConfig()
	if cfg.Speed.Initial() != 150*time.Millisecond {
		t.Errorf("Initial() = %v", cfg.Speed.Initial())
	}
	if cfg.Twists.Obstacle.Duration() != 5*time.Second {
		t.Errorf("obstacle Duration() = %v", cfg.Twists.Obstacle.Duration())
	}
	if cfg.Twists.Stagger() != 400*time.Millisecond {
		t.Errorf("Stagger() = %v", cfg.Twists.Stagger())
	}
	if cfg.Loop.MaxFrameDelta() != 250*time.Millisecond {
		t.Errorf("MaxFrameDelta() = %v", cfg.Loop.MaxFrameDelta())
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  size: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan SnakeConfig, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c SnakeConfig) { changes <- c }, nil)
	}()

	// Give the watcher time to register before writing.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case cfg := <-changes:
			if cfg.Grid.Size != 24 {
				continue
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch() returned %v", err)
			}
			return
		case <-tick.C:
			_ = os.WriteFile(path, []byte("grid:\n  size: 24\n"), 0o644)
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
