package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/neon-snake/internal/game"
)

const ms = time.Millisecond

// Tones returns the notes played for cue. Cues without a sound return nil.
func Tones(cue game.Cue) []Tone {
	switch cue {
	case game.CueEat:
		return []Tone{{
			Wave: WaveSquare, FromHz: 400, ToHz: 800, Ramp: 100 * ms,
			FromGain: 0.3, ToGain: 0.01, Decay: 150 * ms, Length: 150 * ms,
		}}
	case game.CueGameOver:
		out := make([]Tone, 3)
		for i := range out {
			step := float64(i)
			out[i] = Tone{
				Wave: WaveSaw, FromHz: 300 - step*50, ToHz: 100 - step*20, Ramp: 500 * ms,
				FromGain: 0.15, ToGain: 0.01, Decay: 600 * ms, Length: 600 * ms,
				Delay: time.Duration(i) * 100 * ms,
			}
		}
		return out
	case game.CueStart:
		notes := []float64{261.63, 329.63, 392.00, 523.25}
		out := make([]Tone, len(notes))
		for i, hz := range notes {
			out[i] = Tone{
				Wave: WaveTriangle, FromHz: hz, ToHz: hz,
				FromGain: 0.2, ToGain: 0.01, Decay: 150 * ms, Length: 150 * ms,
				Delay: time.Duration(i) * 100 * ms,
			}
		}
		return out
	case game.CueTwist, game.CueTeleport:
		return []Tone{{
			Wave: WaveTriangle, FromHz: 600, ToHz: 1200, Ramp: 200 * ms,
			FromGain: 0.2, ToGain: 0.01, Decay: 250 * ms, Length: 250 * ms,
		}}
	default:
		return nil
	}
}

// Sound mixes the tones of cue into one streamer, or returns nil.
func Sound(cue game.Cue, rate beep.SampleRate) beep.Streamer {
	tones := Tones(cue)
	if len(tones) == 0 {
		return nil
	}
	streams := make([]beep.Streamer, len(tones))
	for i, t := range tones {
		streams[i] = t.Streamer(rate)
	}
	if len(streams) == 1 {
		return streams[0]
	}
	return beep.Mix(streams...)
}

// Length is how long the sound of cue lasts, delays included.
func Length(cue game.Cue) time.Duration {
	var longest time.Duration
	for _, t := range Tones(cue) {
		longest = max(longest, t.Delay+t.Length)
	}
	return longest
}
