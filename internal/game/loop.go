package game

import (
	"time"
)

// Loop drives a Game from display frames. Frame is called once per frame with
// the wall-clock time; the loop turns that into game-clock time that only
// advances while the run is live.
type Loop struct {
	game     *Game
	renderer Renderer

	live     bool      // Previous frame saw a running game
	last     time.Time // Wall-clock baseline of the previous frame
	clock    time.Duration
	lastMove time.Duration
}

// NewLoop creates a loop for g. renderer may be nil.
func NewLoop(g *Game, renderer Renderer) *Loop {
	return &Loop{
		game:     g,
		renderer: renderer,
	}
}

// Frame runs one display frame.
func (l *Loop) Frame(now time.Time) {
	if l.game.State() != StateRunning {
		l.live = false
		l.render()
		return
	}

	// First frame of a run, or first frame after resume: start from here so
	// time spent outside Running never turns into a catch-up move.
	if !l.live {
		l.live = true
		l.last = now
		l.lastMove = l.clock
	}

	delta := now.Sub(l.last)
	l.last = now
	if delta < 0 {
		delta = 0
	}
	// Hazard timers run on this clock, so a stall stretches them in wall time.
	if maxDelta := l.game.cfg.Loop.MaxFrameDelta(); maxDelta > 0 && delta > maxDelta {
		delta = maxDelta
	}
	l.clock += delta

	l.game.MaintainHazards(l.clock)
	l.render()

	if l.clock-l.lastMove >= l.game.EffectiveInterval() {
		l.game.AdvanceTick(l.clock)
		l.lastMove = l.clock
	}
}

// Clock returns the accumulated game-clock time.
func (l *Loop) Clock() time.Duration {
	return l.clock
}

// Game returns the driven game.
func (l *Loop) Game() *Game {
	return l.game
}

// Render draws the current state without advancing anything.
func (l *Loop) Render() {
	l.render()
}

func (l *Loop) render() {
	if l.renderer == nil {
		return
	}
	v := l.game.View()
	guard(l.game.log, "render", func() { l.renderer.Render(v) })
}
