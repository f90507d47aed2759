// Package audio synthesizes the game's sound cues.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/neon-snake/internal/game"
)

const (
	// SampleRate is the output rate for every cue.
	SampleRate = beep.SampleRate(44100)
	// MasterGain scales every cue.
	MasterGain = 0.3
)

// Output plays a finished streamer without blocking.
type Output interface {
	Play(beep.Streamer)
}

type speakerOutput struct{}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }

// Player implements game.Audio.
type Player struct {
	mu      sync.Mutex
	out     Output
	enabled bool
	log     *log.Logger
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// NewSpeaker opens the system speaker. When no audio device is available
// the returned player stays silent.
func NewSpeaker(enabled bool, logger *log.Logger) *Player {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond))
	})
	if speakerErr != nil {
		logger.Warn("audio unavailable, sound disabled", "err", speakerErr)
		return NewPlayer(nil, enabled, logger)
	}
	return NewPlayer(speakerOutput{}, enabled, logger)
}

// NewPlayer plays cues into out. A nil out makes a silent player.
func NewPlayer(out Output, enabled bool, logger *log.Logger) *Player {
	return &Player{out: out, enabled: enabled, log: logger}
}

// Play implements game.Audio.
func (p *Player) Play(cue game.Cue) {
	p.mu.Lock()
	out, on := p.out, p.enabled
	p.mu.Unlock()
	if !on || out == nil {
		return
	}

	s := Sound(cue, SampleRate)
	if s == nil {
		return
	}
	out.Play(&effects.Gain{Streamer: s, Gain: MasterGain - 1})
	p.log.Debug("sound", "cue", cue)
}

// SetEnabled toggles sound.
func (p *Player) SetEnabled(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = on
}

// Enabled reports whether sound is on.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

var _ game.Audio = (*Player)(nil)
