package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

const configFile = "snake.yaml"

// LoadSnake loads the snake configuration.
// Search order: customPath -> ~/.neonsnake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
//
// Keys missing from a file keep their default values.
func LoadSnake(customPath string) (SnakeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultSnakeConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseSnake(data)
		if err != nil {
			return DefaultSnakeConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSnake(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parseSnake(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseSnake(defaultSnakeYAML)
	if err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ResolvePath returns the file LoadSnake would read, or "" when it would
// fall back to the embedded default.
func ResolvePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	if p := userConfigPath(configFile); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	local := filepath.Join("configs", configFile)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return ""
}

func parseSnake(data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Grid.Size < 5:
		return fmt.Errorf("grid.size must be at least 5, got %d", c.Grid.Size)
	case c.Speed.MinMs <= 0:
		return fmt.Errorf("speed.min_ms must be positive, got %d", c.Speed.MinMs)
	case c.Speed.InitialMs < c.Speed.MinMs:
		return fmt.Errorf("speed.initial_ms (%d) is below speed.min_ms (%d)", c.Speed.InitialMs, c.Speed.MinMs)
	case c.Twists.SpeedBoost.Multiplier <= 0:
		return fmt.Errorf("twists.speed_boost.multiplier must be positive")
	case c.Twists.Shrink.Margin < 0:
		return fmt.Errorf("twists.shrink.margin must not be negative, got %d", c.Twists.Shrink.Margin)
	case 2*c.Twists.Shrink.Margin >= c.Grid.Size:
		return fmt.Errorf("twists.shrink.margin (%d) leaves no room on a %d grid", c.Twists.Shrink.Margin, c.Grid.Size)
	}
	for _, t := range c.Twists.timings() {
		if t.Chance < 0 || t.Chance > 1 {
			return fmt.Errorf("twist chance %v outside [0, 1]", t.Chance)
		}
	}
	return nil
}

// Watch reloads path whenever it changes and hands the new config to onChange.
// Parse failures go to onError and keep the previous config in effect.
// The parent directory is watched so editors that replace the file are seen.
// Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(SnakeConfig), onError func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config: watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadSnake(abs)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".neonsnake", "configs", filename)
}
