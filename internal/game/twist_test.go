package game

import (
	"testing"
	"time"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/core"
)

// loudConfig makes every twist fire on every eat.
func loudConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Twists.Obstacle.Chance = 1
	cfg.Twists.SpeedBoost.Chance = 1
	cfg.Twists.Blur.Chance = 1
	cfg.Twists.Portal.Chance = 1
	cfg.Twists.Shrink.Chance = 1
	return cfg
}

func TestRegistryOrderAndTiming(t *testing.T) {
	specs := Registry(config.DefaultSnakeConfig().Twists)
	wantKinds := []TwistKind{TwistObstacle, TwistSpeedBoost, TwistBlur, TwistPortal, TwistShrink}
	if len(specs) != len(wantKinds) {
		t.Fatalf("registry has %d entries, want %d", len(specs), len(wantKinds))
	}
	for i, s := range specs {
		if s.Kind != wantKinds[i] {
			t.Errorf("entry %d = %v, want %v", i, s.Kind, wantKinds[i])
		}
		if s.Warning != time.Second {
			t.Errorf("%v warning = %v, want 1s", s.Kind, s.Warning)
		}
		if s.Text == "" {
			t.Errorf("%v has no warning text", s.Kind)
		}
	}
	if specs[0].Duration != 5*time.Second || specs[3].Duration != 8*time.Second {
		t.Errorf("unexpected durations: obstacle=%v portal=%v", specs[0].Duration, specs[3].Duration)
	}
}

func TestRollStaggersWarnings(t *testing.T) {
	g, _ := newTestGame(t, loudConfig())
	now := 2 * time.Second

	g.rollTwists(now)
	if len(g.pending) != 5 {
		t.Fatalf("pending = %d, want 5", len(g.pending))
	}
	for i, p := range g.pending {
		wantWarn := now + time.Duration(i)*400*time.Millisecond
		if p.warnAt != wantWarn {
			t.Errorf("pending[%d].warnAt = %v, want %v", i, p.warnAt, wantWarn)
		}
		if p.applyAt != wantWarn+time.Second {
			t.Errorf("pending[%d].applyAt = %v, want %v", i, p.applyAt, wantWarn+time.Second)
		}
		if p.generation != g.Generation() {
			t.Errorf("pending[%d] generation = %d, want %d", i, p.generation, g.Generation())
		}
	}

	// Only the first warning is visible at roll time.
	g.MaintainHazards(now)
	if v := g.View(); len(v.Warnings) != 1 || v.Warnings[0] != "OBSTACLES INCOMING!" {
		t.Errorf("warnings = %v, want just the obstacle warning", v.Warnings)
	}

	g.MaintainHazards(now + 400*time.Millisecond)
	if v := g.View(); len(v.Warnings) != 2 {
		t.Errorf("warnings = %v, want two", v.Warnings)
	}
}

func TestRollSkipsFailedPreconditions(t *testing.T) {
	g, _ := newTestGame(t, loudConfig())
	g.obstacles = []Obstacle{{Cell: core.Cell{X: 1, Y: 1}}}
	g.portals = []core.Cell{{X: 2, Y: 2}, {X: 20, Y: 20}}
	g.portalExpiry = time.Hour
	g.shrinkActive = true
	g.shrinkEnd = time.Hour

	g.rollTwists(0)
	for _, p := range g.pending {
		switch p.kind {
		case TwistObstacle, TwistPortal, TwistShrink:
			t.Errorf("%v queued although its precondition fails", p.kind)
		}
	}
	if len(g.pending) != 2 {
		t.Errorf("pending = %d, want boost and blur only", len(g.pending))
	}
	// Stagger counts only queued twists.
	if g.pending[1].warnAt != 400*time.Millisecond {
		t.Errorf("second warnAt = %v, want 400ms", g.pending[1].warnAt)
	}
}

func TestPendingTwistsApplyAfterWarning(t *testing.T) {
	g, rec := newTestGame(t, loudConfig())
	g.rollTwists(0)

	g.MaintainHazards(999 * time.Millisecond)
	if len(g.obstacles) != 0 {
		t.Fatal("obstacles must not appear before the warning elapses")
	}

	g.MaintainHazards(3 * time.Second)
	v := g.View()
	if len(v.Obstacles) != 5 {
		t.Errorf("obstacles = %d, want a batch of 5", len(v.Obstacles))
	}
	if len(v.Portals) != 2 {
		t.Errorf("portals = %d, want 2", len(v.Portals))
	}
	if !v.Boost || !v.Blur || !v.Shrunk {
		t.Errorf("boost=%v blur=%v shrunk=%v, want all active", v.Boost, v.Blur, v.Shrunk)
	}
	if v.BlurAmount != 8 {
		t.Errorf("blur amount = %d, want 8", v.BlurAmount)
	}
	if rec.count(CueTwist) != 5 {
		t.Errorf("twist cues = %d, want 5", rec.count(CueTwist))
	}
	if len(g.pending) != 0 {
		t.Errorf("pending = %d after apply, want 0", len(g.pending))
	}
	if len(v.Warnings) != 0 {
		t.Errorf("warnings = %v after apply, want none", v.Warnings)
	}
}

func TestStaleGenerationDropped(t *testing.T) {
	g, rec := newTestGame(t, loudConfig())
	g.rollTwists(0)
	if len(g.pending) == 0 {
		t.Fatal("expected queued twists")
	}

	g.Start() // New run before the warning elapsed.
	g.MaintainHazards(10 * time.Second)

	v := g.View()
	if len(v.Obstacles) != 0 || len(v.Portals) != 0 || v.Boost || v.Blur || v.Shrunk {
		t.Errorf("stale twist leaked into the new run: %+v", v)
	}
	if len(g.pending) != 0 {
		t.Errorf("pending = %d, stale entries should be dropped", len(g.pending))
	}
	if rec.count(CueTwist) != 0 {
		t.Errorf("twist cues = %d, want 0", rec.count(CueTwist))
	}
}

func TestPendingNotAppliedAfterGameOver(t *testing.T) {
	g, rec := newTestGame(t, loudConfig())
	g.rollTwists(0)
	g.endRun(CauseWall)

	g.MaintainHazards(10 * time.Second)
	if len(g.obstacles) != 0 || g.boostActive {
		t.Error("twists must not apply after the run ended")
	}
	if g.applyTwist(TwistSpeedBoost, 10*time.Second) {
		t.Error("applyTwist must refuse once the run is over")
	}
	if rec.count(CueTwist) != 0 {
		t.Errorf("twist cues = %d, want 0", rec.count(CueTwist))
	}
}

func TestSecondPortalRecheckedAtApply(t *testing.T) {
	g, rec := newTestGame(t, quietConfig())
	gen := g.Generation()
	g.pending = []pendingTwist{
		{kind: TwistPortal, generation: gen, warnAt: 0, applyAt: time.Second},
		{kind: TwistPortal, generation: gen, warnAt: 0, applyAt: time.Second},
	}

	g.MaintainHazards(time.Second)
	if len(g.portals) != 2 {
		t.Fatalf("portals = %d, want exactly one pair", len(g.portals))
	}
	if rec.count(CueTwist) != 1 {
		t.Errorf("twist cues = %d, want 1", rec.count(CueTwist))
	}
}

func TestObstacleExpiry(t *testing.T) {
	g, _ := newTestGame(t, quietConfig())
	spawn := 3 * time.Second
	lifetime := 5 * time.Second

	if !g.applyTwist(TwistObstacle, spawn) {
		t.Fatal("obstacle twist did not apply")
	}
	if len(g.obstacles) != 5 {
		t.Fatalf("obstacles = %d, want 5", len(g.obstacles))
	}

	g.MaintainHazards(spawn + lifetime - time.Millisecond)
	if len(g.obstacles) != 5 {
		t.Errorf("obstacles = %d at T+D-1, want 5", len(g.obstacles))
	}
	g.MaintainHazards(spawn + lifetime)
	if len(g.obstacles) != 0 {
		t.Errorf("obstacles = %d at T+D, want 0", len(g.obstacles))
	}
}

func TestObstaclesAvoidOccupiedCells(t *testing.T) {
	g, _ := newTestGame(t, quietConfig())
	g.food = core.Cell{X: 0, Y: 0}
	g.portals = []core.Cell{{X: 1, Y: 1}, {X: 20, Y: 20}}
	g.portalExpiry = time.Hour

	g.applyTwist(TwistObstacle, 0)
	seen := map[core.Cell]bool{}
	for _, o := range g.obstacles {
		if g.onSnake(o.Cell) || o.Cell == g.food || o.Cell == g.portals[0] || o.Cell == g.portals[1] {
			t.Errorf("obstacle on occupied cell %v", o.Cell)
		}
		if seen[o.Cell] {
			t.Errorf("duplicate obstacle %v", o.Cell)
		}
		seen[o.Cell] = true
	}
}

func TestObstacleSkipOnExhaustion(t *testing.T) {
	cfg := quietConfig()
	cfg.Placement.TwistAttempts = 0
	g, _ := newTestGame(t, cfg)

	if g.applyTwist(TwistObstacle, 0) {
		t.Error("obstacle twist should be skipped when placement is exhausted")
	}
	if len(g.obstacles) != 0 {
		t.Errorf("obstacles = %d, want 0", len(g.obstacles))
	}
}

func TestPortalPairing(t *testing.T) {
	g, _ := newTestGame(t, quietConfig())

	if !g.applyTwist(TwistPortal, time.Second) {
		t.Fatal("portal twist did not apply")
	}
	if len(g.portals) != 2 {
		t.Fatalf("portals = %d, want 2", len(g.portals))
	}
	if d := g.portals[0].Manhattan(g.portals[1]); d < 10 {
		t.Errorf("portal separation = %d, want >= 10", d)
	}
	if g.applyTwist(TwistPortal, time.Second) {
		t.Error("a second pair must be refused while one is active")
	}

	g.MaintainHazards(time.Second + 8*time.Second - time.Millisecond)
	if len(g.portals) != 2 {
		t.Error("portals expired early")
	}
	g.MaintainHazards(time.Second + 8*time.Second)
	if len(g.portals) != 0 {
		t.Errorf("portals = %d after expiry, want 0", len(g.portals))
	}
}

func TestSpeedBoostOverwritesEnd(t *testing.T) {
	g, _ := newTestGame(t, quietConfig())

	g.applyTwist(TwistSpeedBoost, 0)
	if got := g.EffectiveInterval(); got != 100*time.Millisecond {
		t.Errorf("boosted interval = %v, want 100ms", got)
	}

	g.applyTwist(TwistSpeedBoost, 3*time.Second)
	if got := g.EffectiveInterval(); got != 100*time.Millisecond {
		t.Errorf("re-activation stacked the multiplier: %v", got)
	}

	g.MaintainHazards(5 * time.Second)
	if !g.boostActive {
		t.Error("boost should still be active after the first end time was overwritten")
	}
	g.MaintainHazards(7 * time.Second)
	if g.boostActive {
		t.Error("boost should end at the overwritten end time")
	}
	if got := g.EffectiveInterval(); got != 150*time.Millisecond {
		t.Errorf("interval = %v after boost, want 150ms", got)
	}
}

func TestBlurExpiry(t *testing.T) {
	g, _ := newTestGame(t, quietConfig())
	g.applyTwist(TwistBlur, time.Second)

	g.MaintainHazards(4*time.Second - time.Millisecond)
	if !g.View().Blur {
		t.Error("blur ended early")
	}
	g.MaintainHazards(4 * time.Second)
	if v := g.View(); v.Blur || v.BlurAmount != 0 {
		t.Errorf("blur = %v amount = %d after expiry", v.Blur, v.BlurAmount)
	}
}

func TestShrink(t *testing.T) {
	g, _ := newTestGame(t, quietConfig())
	g.food = core.Cell{X: 1, Y: 1}

	if !g.applyTwist(TwistShrink, 0) {
		t.Fatal("shrink did not apply")
	}
	want := core.Bounds{MinX: 5, MinY: 5, MaxX: 24, MaxY: 24}
	if g.bounds != want {
		t.Errorf("bounds = %+v, want %+v", g.bounds, want)
	}
	if !g.bounds.Contains(g.food) {
		t.Errorf("food %v left outside the shrunk arena", g.food)
	}
	if g.applyTwist(TwistShrink, 0) {
		t.Error("shrink must not re-apply while active")
	}

	g.MaintainHazards(6 * time.Second)
	if g.bounds != core.GridBounds(30) || g.shrinkActive {
		t.Errorf("bounds = %+v after expiry, want full grid", g.bounds)
	}
}

func TestPauseFreezesHazards(t *testing.T) {
	g, _ := newTestGame(t, quietConfig())
	g.applyTwist(TwistObstacle, 0)

	g.TogglePause()
	g.MaintainHazards(time.Hour) // Ignored while paused.
	if len(g.obstacles) != 5 {
		t.Errorf("obstacles = %d, paused maintenance must be a no-op", len(g.obstacles))
	}
}
