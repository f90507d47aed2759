package game

import (
	"slices"

	"github.com/vovakirdan/neon-snake/internal/core"
)

// View is a read-only snapshot handed to the renderer.
type View struct {
	GridSize  int
	State     State
	Cause     Cause
	Score     int
	HighScore int

	Snake     []core.Cell // Head first
	Direction core.Direction
	Food      core.Cell
	Obstacles []core.Cell
	Portals   []core.Cell

	Bounds     core.Bounds
	Shrunk     bool
	Blur       bool
	BlurAmount int
	Boost      bool

	Particles []Particle
	Warnings  []string
}

// View snapshots the game for rendering. Slices are copies.
func (g *Game) View() View {
	v := View{
		GridSize:  g.cfg.Grid.Size,
		State:     g.state,
		Cause:     g.cause,
		Score:     g.score,
		HighScore: g.highScore,

		Snake:     slices.Clone(g.snake),
		Direction: g.dir,
		Food:      g.food,
		Portals:   slices.Clone(g.portals),

		Bounds: g.bounds,
		Shrunk: g.shrinkActive,
		Blur:   g.blurActive,
		Boost:  g.boostActive,

		Particles: slices.Clone(g.particles),
	}
	if g.blurActive {
		v.BlurAmount = g.cfg.Twists.Blur.Amount
	}
	for _, o := range g.obstacles {
		v.Obstacles = append(v.Obstacles, o.Cell)
	}
	for _, w := range g.warnings {
		v.Warnings = append(v.Warnings, w.Text)
	}
	return v
}

// Head returns the snake's head, or NoCell before a run starts.
func (v View) Head() core.Cell {
	if len(v.Snake) == 0 {
		return core.NoCell
	}
	return v.Snake[0]
}
