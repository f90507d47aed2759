package config

import "math"

// presetScaling describes how a preset bends the base config.
type presetScaling struct {
	initialMs   int     // Replaces speed.initial_ms
	chanceScale float64 // Multiplies every twist chance
}

var presets = map[DifficultyPreset]presetScaling{
	DifficultyEasy: {initialMs: 180, chanceScale: 0.6},
	DifficultyHard: {initialMs: 110, chanceScale: 1.4},
}

// ApplySnakePreset modifies the config based on a difficulty preset.
// Normal leaves the config as loaded.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	p, ok := presets[preset]
	if !ok {
		return
	}

	cfg.Speed.InitialMs = max(p.initialMs, cfg.Speed.MinMs)

	for _, t := range cfg.Twists.timings() {
		t.Chance = clampF(t.Chance*p.chanceScale, 0.0, 1.0)
	}
}

// timings returns pointers to the shared timing block of every twist.
func (t *TwistsConfig) timings() []*TwistTiming {
	return []*TwistTiming{
		&t.Obstacle.TwistTiming,
		&t.SpeedBoost.TwistTiming,
		&t.Blur.TwistTiming,
		&t.Portal.TwistTiming,
		&t.Shrink.TwistTiming,
	}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
