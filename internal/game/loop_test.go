package game

import (
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-snake/internal/core"
)

type frameRecorder struct {
	frames int
	last   View
}

func (f *frameRecorder) Render(v View) {
	f.frames++
	f.last = v
}

func newTestLoop(t *testing.T) (*Loop, *frameRecorder, time.Time) {
	t.Helper()
	g, _ := newTestGame(t, quietConfig())
	fr := &frameRecorder{}
	return NewLoop(g, fr), fr, time.Unix(1_700_000_000, 0)
}

func headX(l *Loop) int {
	return l.Game().View().Head().X
}

func TestLoopMovesOnInterval(t *testing.T) {
	l, fr, t0 := newTestLoop(t)

	for i, at := range []time.Duration{0, 50, 100} {
		l.Frame(t0.Add(at * time.Millisecond))
		if headX(l) != 15 {
			t.Fatalf("frame %d: head moved early to x=%d", i, headX(l))
		}
	}
	l.Frame(t0.Add(150 * time.Millisecond))
	if headX(l) != 16 {
		t.Errorf("head x = %d after 150ms, want 16", headX(l))
	}
	if fr.frames != 4 {
		t.Errorf("renders = %d, want one per frame", fr.frames)
	}
	if l.Clock() != 150*time.Millisecond {
		t.Errorf("clock = %v, want 150ms", l.Clock())
	}
}

func TestLoopCapsFrameDelta(t *testing.T) {
	l, _, t0 := newTestLoop(t)

	l.Frame(t0)
	l.Frame(t0.Add(5 * time.Second))

	if l.Clock() != 250*time.Millisecond {
		t.Errorf("clock = %v, want capped 250ms", l.Clock())
	}
	if headX(l) != 16 {
		t.Errorf("head x = %d, want exactly one move", headX(l))
	}
}

func TestLoopRebaselinesAfterPause(t *testing.T) {
	l, fr, t0 := newTestLoop(t)
	g := l.Game()

	l.Frame(t0)
	l.Frame(t0.Add(100 * time.Millisecond))

	g.TogglePause()
	l.Frame(t0.Add(10 * time.Second))
	if l.Clock() != 100*time.Millisecond {
		t.Errorf("clock advanced while paused: %v", l.Clock())
	}
	if fr.last.State != StatePaused {
		t.Errorf("paused frame rendered state %v", fr.last.State)
	}

	g.TogglePause()
	resume := t0.Add(20 * time.Second)
	l.Frame(resume)
	if headX(l) != 15 {
		t.Fatalf("catch-up move after resume: head x = %d", headX(l))
	}
	if l.Clock() != 100*time.Millisecond {
		t.Errorf("clock = %v on resume frame, want 100ms", l.Clock())
	}

	l.Frame(resume.Add(100 * time.Millisecond))
	if headX(l) != 15 {
		t.Error("move timer was not re-baselined on resume")
	}
	l.Frame(resume.Add(150 * time.Millisecond))
	if headX(l) != 16 {
		t.Errorf("head x = %d, want one move a full interval after resume", headX(l))
	}
}

func TestLoopPauseFreezesHazardCountdown(t *testing.T) {
	l, _, t0 := newTestLoop(t)
	g := l.Game()
	g.speed = time.Hour // Keep the snake still.

	l.Frame(t0)
	if !g.applyTwist(TwistObstacle, l.Clock()) {
		t.Fatal("obstacle twist did not apply")
	}

	step := func(from time.Time, d time.Duration) time.Time {
		for elapsed := time.Duration(0); elapsed < d; elapsed += 100 * time.Millisecond {
			from = from.Add(100 * time.Millisecond)
			l.Frame(from)
		}
		return from
	}

	now := step(t0, 4*time.Second)
	g.TogglePause()
	now = now.Add(time.Hour)
	l.Frame(now)
	g.TogglePause()
	l.Frame(now) // Resume frame, no elapsed time.

	if len(g.obstacles) != 5 {
		t.Fatalf("obstacles = %d, pause time must not count toward expiry", len(g.obstacles))
	}

	step(now, time.Second)
	if len(g.obstacles) != 0 {
		t.Errorf("obstacles = %d after 5s of play, want 0", len(g.obstacles))
	}
}

// A host stall only advances the game clock by the frame cap, so hazards
// outlive it in wall time.
func TestLoopStallStretchesHazardLifetime(t *testing.T) {
	l, _, t0 := newTestLoop(t)
	g := l.Game()
	g.speed = time.Hour

	l.Frame(t0)
	if !g.applyTwist(TwistObstacle, l.Clock()) {
		t.Fatal("obstacle twist did not apply")
	}

	now := t0.Add(10 * time.Second)
	l.Frame(now)
	if l.Clock() != 250*time.Millisecond {
		t.Fatalf("clock = %v, want capped 250ms", l.Clock())
	}
	if len(g.obstacles) != 5 {
		t.Fatalf("obstacles = %d, a stall must not expire them", len(g.obstacles))
	}

	for l.Clock() < 5*time.Second {
		now = now.Add(100 * time.Millisecond)
		l.Frame(now)
	}
	if len(g.obstacles) != 0 {
		t.Errorf("obstacles = %d after 5s of game clock, want 0", len(g.obstacles))
	}
}

func TestLoopRendersOutsideRun(t *testing.T) {
	g := New(quietConfig(), Deps{Logger: log.New(io.Discard), Rand: rand.New(rand.NewSource(1))})
	fr := &frameRecorder{}
	l := NewLoop(g, fr)

	l.Frame(time.Now())
	if fr.frames != 1 || fr.last.State != StateReady {
		t.Errorf("frames = %d state = %v, want one ready frame", fr.frames, fr.last.State)
	}
	if fr.last.Head() != core.NoCell {
		t.Errorf("ready view head = %v, want NoCell", fr.last.Head())
	}
	if l.Clock() != 0 {
		t.Errorf("clock = %v, want 0 outside a run", l.Clock())
	}
}

func TestLoopRunsTwistsEndToEnd(t *testing.T) {
	g, rec := newTestGame(t, loudConfig())
	l := NewLoop(g, nil)
	t0 := time.Unix(0, 0)

	l.Frame(t0)
	g.food = g.snake[0].Add(g.dir)
	l.Frame(t0.Add(150 * time.Millisecond))
	if g.Score() != 10 {
		t.Fatalf("score = %d, want 10 after eating", g.Score())
	}
	if len(g.pending) == 0 {
		t.Fatal("eating with every chance at 1 should queue twists")
	}

	g.speed = time.Hour
	now := t0.Add(150 * time.Millisecond)
	for range 30 {
		now = now.Add(100 * time.Millisecond)
		l.Frame(now)
	}
	if rec.count(CueTwist) == 0 {
		t.Error("queued twists never applied through the loop")
	}
}
