package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSquare Wave = iota
	WaveSaw
	WaveTriangle
)

// Tone is one synthesized note: an exponential pitch ramp under an
// exponential gain decay.
type Tone struct {
	Wave     Wave
	FromHz   float64
	ToHz     float64
	Ramp     time.Duration // Time to reach ToHz
	FromGain float64
	ToGain   float64
	Decay    time.Duration // Time to reach ToGain
	Length   time.Duration
	Delay    time.Duration // Silence before the note starts
}

// tone streams a Tone.
type tone struct {
	t     Tone
	rate  beep.SampleRate
	phase float64
	pos   int
	total int
	ramp  int
	decay int
}

// Streamer renders t at rate, delay included.
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	s := &tone{
		t:     t,
		rate:  rate,
		total: rate.N(t.Length),
		ramp:  rate.N(t.Ramp),
		decay: rate.N(t.Decay),
	}
	if t.Delay <= 0 {
		return s
	}
	return beep.Seq(beep.Silence(rate.N(t.Delay)), s)
}

func (s *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}

		var val float64
		switch s.t.Wave {
		case WaveSquare:
			val = 1
			if s.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (s.phase - 0.5)
		case WaveTriangle:
			val = 1 - 4*math.Abs(s.phase-0.5)
		}
		val *= expRamp(s.t.FromGain, s.t.ToGain, s.pos, s.decay)

		samples[i][0] = val
		samples[i][1] = val

		s.phase += expRamp(s.t.FromHz, s.t.ToHz, s.pos, s.ramp) / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *tone) Err() error { return nil }

// expRamp moves from a to b exponentially over n samples, then holds b.
func expRamp(a, b float64, pos, n int) float64 {
	if n <= 0 || a <= 0 || b <= 0 || a == b {
		if pos >= n {
			return b
		}
		return a
	}
	if pos >= n {
		return b
	}
	return a * math.Pow(b/a, float64(pos)/float64(n))
}
