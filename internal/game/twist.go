package game

import (
	"time"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/core"
)

// TwistKind identifies a transient hazard or effect.
type TwistKind int

const (
	TwistObstacle TwistKind = iota
	TwistSpeedBoost
	TwistBlur
	TwistPortal
	TwistShrink
)

func (k TwistKind) String() string {
	switch k {
	case TwistObstacle:
		return "obstacle"
	case TwistSpeedBoost:
		return "speed_boost"
	case TwistBlur:
		return "blur"
	case TwistPortal:
		return "portal"
	case TwistShrink:
		return "shrink"
	default:
		return "unknown"
	}
}

// TwistSpec is one registry entry.
type TwistSpec struct {
	Kind     TwistKind
	Chance   float64
	Warning  time.Duration
	Duration time.Duration
	Text     string
}

// Obstacle is a blocking cell with a finite lifetime.
type Obstacle struct {
	Cell      core.Cell
	SpawnedAt time.Duration
}

// Warning is an announcement shown until its twist applies.
type Warning struct {
	Kind  TwistKind
	Text  string
	Until time.Duration
}

type pendingTwist struct {
	kind       TwistKind
	generation uint64
	warnAt     time.Duration
	applyAt    time.Duration
	warned     bool
}

// Registry builds the twist table in roll order.
func Registry(cfg config.TwistsConfig) []TwistSpec {
	def := func(kind TwistKind, t config.TwistTiming, text string) TwistSpec {
		return TwistSpec{
			Kind:     kind,
			Chance:   t.Chance,
			Warning:  t.Warning(),
			Duration: t.Duration(),
			Text:     text,
		}
	}
	return []TwistSpec{
		def(TwistObstacle, cfg.Obstacle.TwistTiming, "OBSTACLES INCOMING!"),
		def(TwistSpeedBoost, cfg.SpeedBoost.TwistTiming, "SPEED BOOST!"),
		def(TwistBlur, cfg.Blur.TwistTiming, "BLUR INCOMING!"),
		def(TwistPortal, cfg.Portal.TwistTiming, "PORTALS ACTIVATED!"),
		def(TwistShrink, cfg.Shrink.TwistTiming, "WALLS CLOSING IN!"),
	}
}

// rollTwists rolls every kind once and queues the winners.
// Simultaneous winners are staggered so their warnings do not overlap.
func (g *Game) rollTwists(now time.Duration) {
	stagger := g.cfg.Twists.Stagger()
	queued := 0
	for _, ts := range g.twists {
		if g.rng.Float64() >= ts.Chance {
			continue
		}
		if !g.canActivate(ts.Kind) {
			continue
		}
		warnAt := now + time.Duration(queued)*stagger
		g.pending = append(g.pending, pendingTwist{
			kind:       ts.Kind,
			generation: g.generation,
			warnAt:     warnAt,
			applyAt:    warnAt + ts.Warning,
		})
		queued++
		g.log.Debug("twist queued", "kind", ts.Kind, "apply_at", warnAt+ts.Warning)
	}
}

// canActivate is the precondition checked at roll time and again at apply time.
func (g *Game) canActivate(kind TwistKind) bool {
	switch kind {
	case TwistObstacle:
		return len(g.obstacles) == 0
	case TwistPortal:
		return len(g.portals) == 0
	case TwistShrink:
		return !g.shrinkActive
	default:
		return true
	}
}

// processPending fires due warnings and applies due twists.
func (g *Game) processPending(now time.Duration) {
	kept := g.pending[:0]
	for _, p := range g.pending {
		if p.generation != g.generation {
			continue
		}
		if !p.warned && now >= p.warnAt {
			p.warned = true
			g.warnings = append(g.warnings, Warning{
				Kind:  p.kind,
				Text:  g.spec(p.kind).Text,
				Until: p.applyAt,
			})
		}
		if now >= p.applyAt {
			if g.applyTwist(p.kind, now) {
				g.cue(CueTwist)
			}
			continue
		}
		kept = append(kept, p)
	}
	clear(g.pending[len(kept):])
	g.pending = kept

	active := g.warnings[:0]
	for _, w := range g.warnings {
		if now < w.Until {
			active = append(active, w)
		}
	}
	g.warnings = active
}

// applyTwist applies one twist. Returns false when it was skipped.
func (g *Game) applyTwist(kind TwistKind, now time.Duration) bool {
	if g.state == StateGameOver || !g.canActivate(kind) {
		return false
	}

	spec := g.spec(kind)
	switch kind {
	case TwistObstacle:
		for range g.cfg.Twists.Obstacle.Count {
			c, ok := g.twistPlacer.Place(g.rng, g.bounds, g.isFree)
			if !ok {
				continue
			}
			g.obstacles = append(g.obstacles, Obstacle{Cell: c, SpawnedAt: now})
		}
		if len(g.obstacles) == 0 {
			return false
		}

	case TwistPortal:
		a, ok := g.twistPlacer.Place(g.rng, g.bounds, g.isFree)
		if !ok {
			return false
		}
		minSep := g.cfg.Twists.Portal.MinSeparation
		b, ok := g.twistPlacer.Place(g.rng, g.bounds, func(c core.Cell) bool {
			return g.isFree(c) && c.Manhattan(a) >= minSep
		})
		if !ok {
			return false
		}
		g.portals = []core.Cell{a, b}
		g.portalExpiry = now + spec.Duration

	case TwistShrink:
		g.bounds = g.full.Inset(g.cfg.Twists.Shrink.Margin)
		g.shrinkActive = true
		g.shrinkEnd = now + spec.Duration
		if g.food != core.NoCell && !g.bounds.Contains(g.food) {
			g.spawnFood()
		}

	case TwistSpeedBoost:
		g.boostActive = true
		g.boostEnd = now + spec.Duration

	case TwistBlur:
		g.blurActive = true
		g.blurEnd = now + spec.Duration
	}

	g.log.Debug("twist applied", "kind", kind)
	return true
}

// expireHazards removes everything whose lifetime has run out at now.
func (g *Game) expireHazards(now time.Duration) {
	lifetime := g.spec(TwistObstacle).Duration
	alive := g.obstacles[:0]
	for _, o := range g.obstacles {
		if now-o.SpawnedAt < lifetime {
			alive = append(alive, o)
		}
	}
	g.obstacles = alive

	if len(g.portals) > 0 && now >= g.portalExpiry {
		g.portals = nil
	}
	if g.boostActive && now >= g.boostEnd {
		g.boostActive = false
	}
	if g.blurActive && now >= g.blurEnd {
		g.blurActive = false
	}
	if g.shrinkActive && now >= g.shrinkEnd {
		g.shrinkActive = false
		g.bounds = g.full
	}
}

func (g *Game) spec(kind TwistKind) TwistSpec {
	for _, s := range g.twists {
		if s.Kind == kind {
			return s
		}
	}
	return TwistSpec{Kind: kind}
}
