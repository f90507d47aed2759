// Package game implements the neon snake state machine, its twist scheduler
// and the frame-driven loop that advances it.
//
// All times inside the package are game-clock readings: the duration the run
// has spent in the Running state. Pausing therefore freezes every countdown.
package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/core"
)

// State is the run lifecycle.
type State int

const (
	StateReady State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Cause explains why a run ended.
type Cause string

const (
	CauseNone     Cause = ""
	CauseWall     Cause = "wall"
	CauseSelf     Cause = "self"
	CauseObstacle Cause = "obstacle"
)

// MoveResult describes one AdvanceTick.
type MoveResult struct {
	Moved      bool
	Ate        bool
	Teleported bool
	Over       bool
	Cause      Cause
}

// Particle is a cosmetic spark in cell units.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // 1 at spawn, removed at 0
}

// Deps are the collaborators a Game calls out to. Any of them may be nil.
type Deps struct {
	Audio       Audio
	HighScores  HighScores
	Leaderboard Leaderboard
	Logger      *log.Logger
	Rand        *rand.Rand
}

// Game owns one snake run and everything on its grid.
type Game struct {
	cfg     config.SnakeConfig
	nextCfg *config.SnakeConfig
	deps    Deps
	log     *log.Logger
	rng     *rand.Rand

	twists      []TwistSpec
	foodPlacer  Placer
	twistPlacer Placer

	state      State
	generation uint64
	cause      Cause

	snake []core.Cell // Head at index 0
	dir   core.Direction
	next  core.Direction // Buffered, committed at the next tick
	food  core.Cell

	full   core.Bounds
	bounds core.Bounds // Active bounds, full or shrunk

	obstacles    []Obstacle
	portals      []core.Cell // Empty or exactly two
	portalExpiry time.Duration
	shrinkActive bool
	shrinkEnd    time.Duration
	boostActive  bool
	boostEnd     time.Duration
	blurActive   bool
	blurEnd      time.Duration

	pending   []pendingTwist
	warnings  []Warning
	particles []Particle

	score     int
	highScore int
	speed     time.Duration
}

// New creates a game in the Ready state.
func New(cfg config.SnakeConfig, deps Deps) *Game {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &Game{
		deps: deps,
		log:  deps.Logger,
		rng:  deps.Rand,
	}
	g.applyConfig(cfg)

	if deps.HighScores != nil {
		guard(g.log, "highscores.load", func() {
			g.highScore = deps.HighScores.Load()
		})
	}

	g.Reset()
	return g
}

func (g *Game) applyConfig(cfg config.SnakeConfig) {
	g.cfg = cfg
	g.twists = Registry(cfg.Twists)
	g.foodPlacer = Placer{Attempts: cfg.Placement.FoodAttempts}
	g.twistPlacer = Placer{Attempts: cfg.Placement.TwistAttempts}
	g.full = core.GridBounds(cfg.Grid.Size)
}

// SetConfig replaces the configuration. A run in progress keeps its config;
// the new one takes effect at the next Start.
func (g *Game) SetConfig(cfg config.SnakeConfig) {
	if g.state == StateRunning || g.state == StatePaused {
		g.nextCfg = &cfg
		return
	}
	g.applyConfig(cfg)
	g.bounds = g.full
}

// Config returns the configuration in effect.
func (g *Game) Config() config.SnakeConfig {
	return g.cfg
}

// Reset clears the run and invalidates queued twists from earlier runs.
func (g *Game) Reset() {
	g.generation++
	g.state = StateReady
	g.cause = CauseNone

	g.snake = nil
	g.dir = core.Right
	g.next = core.Right
	g.food = core.NoCell

	g.bounds = g.full
	g.obstacles = nil
	g.portals = nil
	g.shrinkActive = false
	g.boostActive = false
	g.blurActive = false
	g.warnings = nil
	g.particles = nil

	g.score = 0
	g.speed = g.cfg.Speed.Initial()
}

// Start resets and begins a new run.
func (g *Game) Start() {
	if g.nextCfg != nil {
		g.applyConfig(*g.nextCfg)
		g.nextCfg = nil
	}
	g.Reset()

	c := g.cfg.Grid.Size / 2
	g.snake = []core.Cell{
		{X: c, Y: c},
		{X: c - 1, Y: c},
		{X: c - 2, Y: c},
	}
	g.spawnFood()
	g.state = StateRunning

	g.cue(CueStart)
	g.log.Info("run started", "generation", g.generation, "grid", g.cfg.Grid.Size)
}

// TogglePause switches between Running and Paused and reports whether the
// game is now paused. Other states are left alone.
func (g *Game) TogglePause() bool {
	switch g.state {
	case StateRunning:
		g.state = StatePaused
	case StatePaused:
		g.state = StateRunning
	}
	return g.state == StatePaused
}

// SetDirection buffers d for the next tick. It is rejected when d lies on the
// axis the snake is already moving along, which rules out reversing into the
// neck. Only accepted while Running.
func (g *Game) SetDirection(d core.Direction) bool {
	if g.state != StateRunning {
		return false
	}
	if d.SameAxis(g.dir) {
		return false
	}
	g.next = d
	return true
}

// EffectiveInterval is the current time between moves.
func (g *Game) EffectiveInterval() time.Duration {
	if g.boostActive {
		return time.Duration(float64(g.speed) / g.cfg.Twists.SpeedBoost.Multiplier)
	}
	return g.speed
}

// AdvanceTick moves the snake one cell. The order of checks decides which
// collision wins and must not change.
func (g *Game) AdvanceTick(now time.Duration) MoveResult {
	if g.state != StateRunning || len(g.snake) == 0 {
		return MoveResult{}
	}
	var res MoveResult

	// 1. Commit buffered direction
	if g.next != g.dir {
		g.cue(CueTurn)
	}
	g.dir = g.next

	// 2. Candidate head
	head := g.snake[0].Add(g.dir)

	// 3. Portal substitution
	if exit, ok := g.portalExit(head); ok {
		head = exit
		res.Teleported = true
		g.cue(CueTeleport)
	}

	// 4-6. Collisions
	var cause Cause
	switch {
	case !g.bounds.Contains(head):
		cause = CauseWall
	case g.onSnake(head):
		cause = CauseSelf
	case g.onObstacle(head):
		cause = CauseObstacle
	}
	if cause != CauseNone {
		g.endRun(cause)
		res.Over = true
		res.Cause = cause
		return res
	}

	// 7. Prepend
	g.snake = append(g.snake, core.Cell{})
	copy(g.snake[1:], g.snake)
	g.snake[0] = head
	res.Moved = true

	// 8. Food or tail
	if head == g.food {
		res.Ate = true
		g.eat(head, now)
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}
	return res
}

func (g *Game) eat(head core.Cell, now time.Duration) {
	g.score += g.cfg.Scoring.FoodReward
	if g.score > g.highScore {
		g.highScore = g.score
		if hs := g.deps.HighScores; hs != nil {
			guard(g.log, "highscores.save", func() { hs.Save(g.score) })
		}
	}
	g.spawnFood()
	g.burst(head)
	g.cue(CueEat)
	g.rollTwists(now)
	g.speed = max(g.cfg.Speed.Min(), g.speed-g.cfg.Speed.Decrement())
}

// MaintainHazards expires twists, fires warnings and applies due twists.
// It runs every frame and does nothing unless the run is live.
func (g *Game) MaintainHazards(now time.Duration) {
	if g.state != StateRunning {
		return
	}
	g.expireHazards(now)
	g.processPending(now)
	g.ageParticles()
}

// endRun is the single terminal transition. Repeat calls are no-ops.
func (g *Game) endRun(cause Cause) {
	if g.state == StateGameOver {
		return
	}
	g.state = StateGameOver
	g.cause = cause
	g.cue(CueGameOver)
	g.log.Info("run over", "score", g.score, "cause", cause, "length", len(g.snake))

	lb := g.deps.Leaderboard
	if lb == nil || g.score <= 0 {
		return
	}
	score := g.score
	guard(g.log, "leaderboard", func() {
		lb.IsTopScore(score, func(top bool) {
			guard(g.log, "leaderboard.result", func() {
				if !top {
					lb.Submit(score, lb.DefaultName())
					return
				}
				lb.PromptForName(score, func(name string) {
					if name == "" {
						name = lb.DefaultName()
					}
					guard(g.log, "leaderboard.submit", func() { lb.Submit(score, name) })
				})
			})
		})
	})
}

func (g *Game) spawnFood() {
	cell, ok := g.foodPlacer.Place(g.rng, g.bounds, g.isFree)
	if !ok {
		cell, _ = scanFree(g.rng, g.bounds, g.isFree)
	}
	g.food = cell
}

// isFree reports whether nothing occupies c.
func (g *Game) isFree(c core.Cell) bool {
	if c == g.food || g.onSnake(c) || g.onObstacle(c) {
		return false
	}
	for _, p := range g.portals {
		if p == c {
			return false
		}
	}
	return true
}

func (g *Game) onSnake(c core.Cell) bool {
	for _, s := range g.snake {
		if s == c {
			return true
		}
	}
	return false
}

func (g *Game) onObstacle(c core.Cell) bool {
	for _, o := range g.obstacles {
		if o.Cell == c {
			return true
		}
	}
	return false
}

func (g *Game) portalExit(c core.Cell) (core.Cell, bool) {
	if len(g.portals) != 2 {
		return c, false
	}
	switch c {
	case g.portals[0]:
		return g.portals[1], true
	case g.portals[1]:
		return g.portals[0], true
	}
	return c, false
}

func (g *Game) burst(at core.Cell) {
	n := g.cfg.Particles.Count
	cx, cy := float64(at.X)+0.5, float64(at.Y)+0.5
	for i := range n {
		angle := 2 * math.Pi * float64(i) / float64(n)
		v := 0.1 + g.rng.Float64()*0.1
		g.particles = append(g.particles, Particle{
			X: cx, Y: cy,
			VX:   math.Cos(angle) * v,
			VY:   math.Sin(angle) * v,
			Life: 1,
		})
	}
}

func (g *Game) ageParticles() {
	frames := g.cfg.Particles.LifeFrames
	if frames <= 0 {
		g.particles = g.particles[:0]
		return
	}
	decay := 1 / float64(frames)
	alive := g.particles[:0]
	for _, p := range g.particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life -= decay
		if p.Life > 1e-9 {
			alive = append(alive, p)
		}
	}
	g.particles = alive
}

func (g *Game) cue(c Cue) {
	if a := g.deps.Audio; a != nil {
		guard(g.log, "audio", func() { a.Play(c) })
	}
}

// State returns the lifecycle state.
func (g *Game) State() State { return g.state }

// Score returns the current run score.
func (g *Game) Score() int { return g.score }

// HighScore returns the best known score including the current run.
func (g *Game) HighScore() int { return g.highScore }

// Generation returns the reset counter.
func (g *Game) Generation() uint64 { return g.generation }
