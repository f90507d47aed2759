package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/neon-snake/internal/core"
	"github.com/vovakirdan/neon-snake/internal/game"
)

// Each grid cell is two columns wide so the board looks square.
const cellW = 2

// Glyphs for board contents.
var (
	glyphHead     = [cellW]rune{'█', '█'}
	glyphBody     = [cellW]rune{'▓', '▓'}
	glyphFood     = [cellW]rune{'<', '>'}
	glyphObstacle = [cellW]rune{'X', 'X'}
	glyphPortal   = [cellW]rune{'(', ')'}
	glyphWall     = [cellW]rune{'░', '░'}
	glyphBlur     = [cellW]rune{'▒', '▒'}
)

var causeText = map[game.Cause]string{
	game.CauseWall:     "You hit the wall",
	game.CauseSelf:     "You bit yourself",
	game.CauseObstacle: "You crashed into an obstacle",
}

// ScreenRenderer draws views into a character screen. It implements
// game.Renderer and keeps the last view for screenshots.
type ScreenRenderer struct {
	screen *core.Screen
	last   game.View
}

// NewScreenRenderer creates a renderer drawing into screen.
func NewScreenRenderer(screen *core.Screen) *ScreenRenderer {
	return &ScreenRenderer{screen: screen}
}

// Last returns the most recently rendered view.
func (r *ScreenRenderer) Last() game.View {
	return r.last
}

// Screen returns the target buffer.
func (r *ScreenRenderer) Screen() *core.Screen {
	return r.screen
}

// layout returns the board rectangle for a grid of size n.
func (r *ScreenRenderer) layout(n int) core.Rect {
	w := n*cellW + 2
	h := n + 2
	return core.Rect{X: max(0, (r.screen.Width()-w)/2), Y: 2, W: w, H: h}
}

// Render implements game.Renderer.
func (r *ScreenRenderer) Render(v game.View) {
	r.last = v
	s := r.screen
	s.Clear()

	board := r.layout(v.GridSize)
	if board.W > s.Width() || board.Bottom()+1 > s.Height() {
		s.DrawTextCentered(s.Height()/2, fmt.Sprintf("Terminal too small: need %dx%d", board.W, board.Bottom()+1), core.ColorYellow)
		return
	}

	r.hud(v, board)
	s.DrawBox(board, core.ColorBlue)

	if v.Shrunk {
		// Fill the whole grid with wall, then clear the live area.
		s.FillRect(r.span(board, core.GridBounds(v.GridSize)), glyphWall[0], core.ColorRed)
		s.FillRect(r.span(board, v.Bounds), ' ', core.ColorDefault)
	}

	for _, p := range v.Particles {
		c := core.Cell{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
		if c.X >= 0 && c.Y >= 0 && c.X < v.GridSize && c.Y < v.GridSize {
			r.cell(board, c, [cellW]rune{'·', ' '}, core.ColorMagenta)
		}
	}

	r.entities(v, board)
	r.overlay(v, board)

	help := "Arrows/WASD: move  Space: pause  Esc: menu  Ctrl+S: screenshot  Q: quit"
	s.DrawTextCentered(board.Bottom(), help, core.ColorGray)
}

func (r *ScreenRenderer) entities(v game.View, board core.Rect) {
	draw := func(c core.Cell, g [cellW]rune, col core.Color) {
		if v.Blur {
			g, col = glyphBlur, core.ColorGray
		}
		r.cell(board, c, g, col)
	}

	for _, c := range v.Obstacles {
		draw(c, glyphObstacle, core.ColorRed)
	}
	for _, c := range v.Portals {
		draw(c, glyphPortal, core.ColorGreen)
	}
	if v.Food != core.NoCell {
		draw(v.Food, glyphFood, core.ColorPink)
	}
	for i := len(v.Snake) - 1; i > 0; i-- {
		draw(v.Snake[i], glyphBody, core.ColorPurple)
	}
	if head := v.Head(); head != core.NoCell {
		col := core.ColorCyan
		if v.Boost {
			col = core.ColorYellow
		}
		draw(head, glyphHead, col)
	}
}

func (r *ScreenRenderer) hud(v game.View, board core.Rect) {
	s := r.screen
	s.DrawText(board.X, 0, fmt.Sprintf("SCORE %d", v.Score))
	hi := fmt.Sprintf("HIGH %d", v.HighScore)
	s.DrawTextColored(board.Right()-len(hi), 0, hi, core.ColorCyan)

	var flags []string
	if v.Boost {
		flags = append(flags, "BOOST")
	}
	if v.Blur {
		flags = append(flags, "BLUR")
	}
	if len(v.Portals) > 0 {
		flags = append(flags, "PORTALS")
	}
	if v.Shrunk {
		flags = append(flags, "SHRINK")
	}
	if len(v.Obstacles) > 0 {
		flags = append(flags, "OBSTACLES")
	}
	s.DrawTextCentered(1, strings.Join(flags, "  "), core.ColorYellow)
}

// overlay writes state messages and twist warnings over the board.
func (r *ScreenRenderer) overlay(v game.View, board core.Rect) {
	s := r.screen
	mid := board.Y + board.H/2

	for i, w := range v.Warnings {
		s.DrawTextCentered(board.Y+2+i, " "+w+" ", core.ColorYellow)
	}

	var lines []string
	col := core.ColorWhite
	switch v.State {
	case game.StateReady:
		lines = []string{"N E O N   S N A K E", "", "Press Enter to start"}
		col = core.ColorCyan
	case game.StatePaused:
		lines = []string{"PAUSED", "", "Space: resume  Esc: menu"}
	case game.StateGameOver:
		lines = []string{"GAME OVER", causeText[v.Cause], fmt.Sprintf("Score %d", v.Score), "", "R: restart  Esc: menu"}
		col = core.ColorPink
	}
	for i, line := range lines {
		if line != "" {
			s.DrawTextCentered(mid-len(lines)/2+i, " "+line+" ", col)
		}
	}
}

func (r *ScreenRenderer) cell(board core.Rect, c core.Cell, g [cellW]rune, col core.Color) {
	x := board.X + 1 + c.X*cellW
	y := board.Y + 1 + c.Y
	for i, ch := range g {
		r.screen.SetColored(x+i, y, ch, col)
	}
}

// span maps inclusive grid bounds to the screen rectangle they cover.
func (r *ScreenRenderer) span(board core.Rect, b core.Bounds) core.Rect {
	return core.NewRect(board.X+1+b.MinX*cellW, board.Y+1+b.MinY, b.Width()*cellW, b.Height())
}
