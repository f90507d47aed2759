// Package config provides YAML-based game configuration loading and
// difficulty management for Neon Snake.
package config

import "time"

// SnakeConfig contains all configuration for a snake run.
type SnakeConfig struct {
	Grid      GridConfig      `yaml:"grid"`
	Speed     SpeedConfig     `yaml:"speed"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Loop      LoopConfig      `yaml:"loop"`
	Placement PlacementConfig `yaml:"placement"`
	Twists    TwistsConfig    `yaml:"twists"`
	Particles ParticlesConfig `yaml:"particles"`
}

// GridConfig defines the playfield.
type GridConfig struct {
	Size int `yaml:"size"` // Cells per side
}

// SpeedConfig defines the movement cadence. Lower interval = faster snake.
type SpeedConfig struct {
	InitialMs   int `yaml:"initial_ms"`
	DecrementMs int `yaml:"decrement_ms"` // Interval reduction per food eaten
	MinMs       int `yaml:"min_ms"`       // Floor for the interval
}

// ScoringConfig defines points awarded.
type ScoringConfig struct {
	FoodReward int `yaml:"food_reward"`
}

// LoopConfig defines frame pacing.
type LoopConfig struct {
	FPS             int `yaml:"fps"`
	MaxFrameDeltaMs int `yaml:"max_frame_delta_ms"` // Cap on a single frame's elapsed time
}

// PlacementConfig bounds the random retry loops used to place entities.
type PlacementConfig struct {
	FoodAttempts  int `yaml:"food_attempts"`
	TwistAttempts int `yaml:"twist_attempts"`
}

// TwistsConfig holds per-twist parameters.
type TwistsConfig struct {
	StaggerMs  int              `yaml:"stagger_ms"` // Extra delay per simultaneous warning
	Obstacle   ObstacleConfig   `yaml:"obstacle"`
	SpeedBoost SpeedBoostConfig `yaml:"speed_boost"`
	Blur       BlurConfig       `yaml:"blur"`
	Portal     PortalConfig     `yaml:"portal"`
	Shrink     ShrinkConfig     `yaml:"shrink"`
}

// TwistTiming is shared by every twist kind.
type TwistTiming struct {
	Chance     float64 `yaml:"chance"` // Probability per food eaten (0..1)
	WarningMs  int     `yaml:"warning_ms"`
	DurationMs int     `yaml:"duration_ms"`
}

// ObstacleConfig defines the obstacle twist.
type ObstacleConfig struct {
	TwistTiming `yaml:",inline"`
	Count       int `yaml:"count"` // Obstacles spawned per activation
}

// SpeedBoostConfig defines the speed boost twist.
type SpeedBoostConfig struct {
	TwistTiming `yaml:",inline"`
	Multiplier  float64 `yaml:"multiplier"`
}

// BlurConfig defines the vision blur twist.
type BlurConfig struct {
	TwistTiming `yaml:",inline"`
	Amount      int `yaml:"amount"` // Intensity passed to the renderer
}

// PortalConfig defines the portal pair twist.
type PortalConfig struct {
	TwistTiming   `yaml:",inline"`
	MinSeparation int `yaml:"min_separation"` // Manhattan distance between the two ends
}

// ShrinkConfig defines the arena shrink twist.
type ShrinkConfig struct {
	TwistTiming `yaml:",inline"`
	Margin      int `yaml:"margin"` // Cells removed from each side
}

// ParticlesConfig defines the cosmetic burst on food eaten.
type ParticlesConfig struct {
	Count      int `yaml:"count"`
	LifeFrames int `yaml:"life_frames"`
}

// Warning returns the warning delay as a duration.
func (t TwistTiming) Warning() time.Duration {
	return ms(t.WarningMs)
}

// Duration returns the effect duration.
func (t TwistTiming) Duration() time.Duration {
	return ms(t.DurationMs)
}

// Initial returns the starting movement interval.
func (s SpeedConfig) Initial() time.Duration {
	return ms(s.InitialMs)
}

// Decrement returns the per-food interval reduction.
func (s SpeedConfig) Decrement() time.Duration {
	return ms(s.DecrementMs)
}

// Min returns the movement interval floor.
func (s SpeedConfig) Min() time.Duration {
	return ms(s.MinMs)
}

// Stagger returns the extra delay between simultaneous warnings.
func (t TwistsConfig) Stagger() time.Duration {
	return ms(t.StaggerMs)
}

// MaxFrameDelta returns the cap applied to one frame's elapsed time.
func (l LoopConfig) MaxFrameDelta() time.Duration {
	return ms(l.MaxFrameDeltaMs)
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts user input to a preset. Unknown values map to normal.
func ParseDifficulty(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return DifficultyNormal
	}
}

// Next cycles easy -> normal -> hard -> easy. Used by the settings screen.
func (p DifficultyPreset) Next() DifficultyPreset {
	switch p {
	case DifficultyEasy:
		return DifficultyNormal
	case DifficultyNormal:
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}
