package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	timing := func(chance float64, durationMs int) TwistTiming {
		return TwistTiming{Chance: chance, WarningMs: 1000, DurationMs: durationMs}
	}
	return SnakeConfig{
		Grid: GridConfig{Size: 30},
		Speed: SpeedConfig{
			InitialMs:   150,
			DecrementMs: 5,
			MinMs:       50,
		},
		Scoring: ScoringConfig{FoodReward: 10},
		Loop: LoopConfig{
			FPS:             60,
			MaxFrameDeltaMs: 250,
		},
		Placement: PlacementConfig{
			FoodAttempts:  100,
			TwistAttempts: 50,
		},
		Twists: TwistsConfig{
			StaggerMs:  400,
			Obstacle:   ObstacleConfig{TwistTiming: timing(0.15, 5000), Count: 5},
			SpeedBoost: SpeedBoostConfig{TwistTiming: timing(0.2, 4000), Multiplier: 1.5},
			Blur:       BlurConfig{TwistTiming: timing(0.15, 3000), Amount: 8},
			Portal:     PortalConfig{TwistTiming: timing(0.12, 8000), MinSeparation: 10},
			Shrink:     ShrinkConfig{TwistTiming: timing(0.1, 6000), Margin: 5},
		},
		Particles: ParticlesConfig{
			Count:      15,
			LifeFrames: 50,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
