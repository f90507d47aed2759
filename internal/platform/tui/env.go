package tui

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-snake/internal/audio"
	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/core"
	"github.com/vovakirdan/neon-snake/internal/leaderboard"
	"github.com/vovakirdan/neon-snake/internal/storage"
)

// Env holds what every session shares. Store, Board and Audio may be nil.
type Env struct {
	Store         *storage.Store
	Board         leaderboard.Board
	Audio         *audio.Player
	Logger        *log.Logger
	ScreenshotDir string
	Runtime       core.RuntimeConfig

	cfg atomic.Pointer[config.SnakeConfig]
}

// SetConfig publishes a new base configuration. Running games pick it up at
// their next run.
func (e *Env) SetConfig(cfg config.SnakeConfig) {
	e.cfg.Store(&cfg)
}

// Config returns the current base configuration.
func (e *Env) Config() config.SnakeConfig {
	if p := e.cfg.Load(); p != nil {
		return *p
	}
	return config.DefaultSnakeConfig()
}

// Settings loads persisted settings, falling back to defaults.
func (e *Env) Settings() storage.Settings {
	if e.Store == nil {
		return storage.DefaultSettings()
	}
	s, err := e.Store.LoadSettings()
	if err != nil {
		e.Logger.Warn("cannot load settings", "err", err)
		return storage.DefaultSettings()
	}
	return s
}

// SaveSettings persists s and applies the sound flag.
func (e *Env) SaveSettings(s storage.Settings) {
	if e.Audio != nil {
		e.Audio.SetEnabled(s.Sound)
	}
	if e.Store == nil {
		return
	}
	if err := e.Store.SaveSettings(s); err != nil {
		e.Logger.Warn("cannot save settings", "err", err)
	}
}

func (e *Env) rand() *rand.Rand {
	seed := e.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// snakeConfig is the base config with the difficulty preset applied.
func snakeConfig(base config.SnakeConfig, difficulty string) config.SnakeConfig {
	config.ApplySnakePreset(&base, config.ParseDifficulty(difficulty))
	return base
}
