package storage

import (
	"strconv"

	"github.com/charmbracelet/log"
)

// Setting keys.
const (
	KeyHighScore  = "high_score"
	KeyPlayerName = "player_name"
	KeySound      = "sound"
	KeyDifficulty = "difficulty"
)

// Settings are the player preferences edited from the menu.
type Settings struct {
	Sound      bool
	Difficulty string
}

// DefaultSettings returns the preferences used before anything is saved.
func DefaultSettings() Settings {
	return Settings{Sound: true, Difficulty: "normal"}
}

// LoadSettings reads the stored preferences, filling gaps with defaults.
func (s *Store) LoadSettings() (Settings, error) {
	out := DefaultSettings()

	if v, ok, err := s.Setting(KeySound); err != nil {
		return out, err
	} else if ok {
		out.Sound = v == "on"
	}
	if v, ok, err := s.Setting(KeyDifficulty); err != nil {
		return out, err
	} else if ok && v != "" {
		out.Difficulty = v
	}
	return out, nil
}

// SaveSettings stores the preferences.
func (s *Store) SaveSettings(settings Settings) error {
	sound := "off"
	if settings.Sound {
		sound = "on"
	}
	if err := s.SetSetting(KeySound, sound); err != nil {
		return err
	}
	return s.SetSetting(KeyDifficulty, settings.Difficulty)
}

// PlayerName returns the remembered player name, or "".
func (s *Store) PlayerName() (string, error) {
	v, _, err := s.Setting(KeyPlayerName)
	return v, err
}

// SetPlayerName remembers the player name.
func (s *Store) SetPlayerName(name string) error {
	return s.SetSetting(KeyPlayerName, name)
}

// HighScore returns the persisted high score, or 0.
func (s *Store) HighScore() (int, error) {
	v, ok, err := s.Setting(KeyHighScore)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// SetHighScore persists the high score.
func (s *Store) SetHighScore(score int) error {
	return s.SetSetting(KeyHighScore, strconv.Itoa(score))
}

// HighScoreKeeper adapts a Store to the game's high score hook.
// Errors are logged; the game never sees them.
type HighScoreKeeper struct {
	Store  *Store
	Logger *log.Logger
}

// Load returns the persisted high score, or 0 on error.
func (k HighScoreKeeper) Load() int {
	n, err := k.Store.HighScore()
	if err != nil {
		k.Logger.Warn("cannot load high score", "err", err)
	}
	return n
}

// Save persists a new high score.
func (k HighScoreKeeper) Save(score int) {
	if err := k.Store.SetHighScore(score); err != nil {
		k.Logger.Warn("cannot save high score", "score", score, "err", err)
	}
}
