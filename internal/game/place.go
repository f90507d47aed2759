package game

import (
	"math/rand"

	"github.com/vovakirdan/neon-snake/internal/core"
)

// Placer picks random free cells by bounded rejection sampling.
// When Attempts draws all hit occupied cells the placement is skipped.
type Placer struct {
	Attempts int
}

// Place draws up to p.Attempts random cells inside area and returns the first
// one accepted by free. ok is false on exhaustion.
func (p Placer) Place(rng *rand.Rand, area core.Bounds, free func(core.Cell) bool) (core.Cell, bool) {
	if area.Width() <= 0 || area.Height() <= 0 {
		return core.NoCell, false
	}
	for range p.Attempts {
		c := core.Cell{
			X: area.MinX + rng.Intn(area.Width()),
			Y: area.MinY + rng.Intn(area.Height()),
		}
		if free(c) {
			return c, true
		}
	}
	return core.NoCell, false
}

// scanFree picks uniformly among every free cell in area.
// Used for food once sampling gives up, so food only disappears when the area is full.
func scanFree(rng *rand.Rand, area core.Bounds, free func(core.Cell) bool) (core.Cell, bool) {
	var cells []core.Cell
	for y := area.MinY; y <= area.MaxY; y++ {
		for x := area.MinX; x <= area.MaxX; x++ {
			c := core.Cell{X: x, Y: y}
			if free(c) {
				cells = append(cells, c)
			}
		}
	}
	if len(cells) == 0 {
		return core.NoCell, false
	}
	return cells[rng.Intn(len(cells))], true
}
