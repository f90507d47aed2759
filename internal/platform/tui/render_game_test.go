package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/neon-snake/internal/core"
	"github.com/vovakirdan/neon-snake/internal/game"
)

func baseView() game.View {
	return game.View{
		GridSize:  30,
		State:     game.StateRunning,
		Score:     10,
		HighScore: 40,
		Snake:     []core.Cell{{X: 15, Y: 15}, {X: 14, Y: 15}, {X: 13, Y: 15}},
		Food:      core.Cell{X: 20, Y: 15},
		Bounds:    core.GridBounds(30),
	}
}

// cellAt returns the screen cell drawn for grid cell c on an 80-wide screen.
func cellAt(r *ScreenRenderer, v game.View, c core.Cell) core.ScreenCell {
	board := r.layout(v.GridSize)
	return r.screen.GetCell(board.X+1+c.X*cellW, board.Y+1+c.Y)
}

func screenText(r *ScreenRenderer) string {
	return r.screen.String()
}

func TestRenderBoard(t *testing.T) {
	r := NewScreenRenderer(core.NewScreen(80, 36))
	v := baseView()
	v.Obstacles = []core.Cell{{X: 3, Y: 3}}
	v.Portals = []core.Cell{{X: 5, Y: 5}, {X: 25, Y: 25}}
	r.Render(v)

	tests := []struct {
		name string
		cell core.Cell
		rune rune
		col  core.Color
	}{
		{"head", core.Cell{X: 15, Y: 15}, '█', core.ColorCyan},
		{"body", core.Cell{X: 14, Y: 15}, '▓', core.ColorPurple},
		{"food", core.Cell{X: 20, Y: 15}, '<', core.ColorPink},
		{"obstacle", core.Cell{X: 3, Y: 3}, 'X', core.ColorRed},
		{"portal", core.Cell{X: 25, Y: 25}, '(', core.ColorGreen},
		{"empty", core.Cell{X: 0, Y: 0}, ' ', core.ColorDefault},
	}
	for _, tt := range tests {
		got := cellAt(r, v, tt.cell)
		if got.Rune != tt.rune || got.Color != tt.col {
			t.Errorf("%s: got %q/%d, want %q/%d", tt.name, got.Rune, got.Color, tt.rune, tt.col)
		}
	}

	text := screenText(r)
	for _, want := range []string{"SCORE 10", "HIGH 40", "PORTALS", "OBSTACLES"} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q", want)
		}
	}
	if r.Last().Score != 10 {
		t.Error("Last() should return the rendered view")
	}
}

func TestRenderBoostedHead(t *testing.T) {
	r := NewScreenRenderer(core.NewScreen(80, 36))
	v := baseView()
	v.Boost = true
	r.Render(v)

	if got := cellAt(r, v, v.Head()); got.Color != core.ColorYellow {
		t.Errorf("boosted head color = %d, want yellow", got.Color)
	}
	if !strings.Contains(screenText(r), "BOOST") {
		t.Error("HUD should flag the boost")
	}
}

func TestRenderBlurHidesEntities(t *testing.T) {
	r := NewScreenRenderer(core.NewScreen(80, 36))
	v := baseView()
	v.Blur, v.BlurAmount = true, 8
	r.Render(v)

	for _, c := range []core.Cell{v.Head(), v.Food} {
		got := cellAt(r, v, c)
		if got.Rune != '▒' || got.Color != core.ColorGray {
			t.Errorf("cell %v = %q/%d, want blurred", c, got.Rune, got.Color)
		}
	}
}

func TestRenderShrinkWalls(t *testing.T) {
	r := NewScreenRenderer(core.NewScreen(80, 36))
	v := baseView()
	v.Shrunk = true
	v.Bounds = core.GridBounds(30).Inset(5)
	r.Render(v)

	if got := cellAt(r, v, core.Cell{X: 4, Y: 15}); got.Rune != '░' {
		t.Errorf("outside cell = %q, want wall", got.Rune)
	}
	if got := cellAt(r, v, core.Cell{X: 5, Y: 10}); got.Rune != ' ' {
		t.Errorf("inside cell = %q, want empty", got.Rune)
	}

	// Every cell of the band is covered, both screen columns included.
	band := []core.Cell{{X: 0, Y: 0}, {X: 29, Y: 29}, {X: 15, Y: 4}, {X: 25, Y: 15}}
	for _, c := range band {
		got := cellAt(r, v, c)
		if got.Rune != '░' || got.Color != core.ColorRed {
			t.Errorf("band cell %v = %q/%v, want red wall", c, got.Rune, got.Color)
		}
		x, y := r.layout(v.GridSize).X+1+c.X*cellW+1, r.layout(v.GridSize).Y+1+c.Y
		if got := r.Screen().GetCell(x, y).Rune; got != '░' {
			t.Errorf("band cell %v right half = %q, want wall", c, got)
		}
	}
	if got := cellAt(r, v, core.Cell{X: 24, Y: 24}); got.Rune == '░' {
		t.Error("last live cell should not be walled")
	}
}

func TestRenderOverlays(t *testing.T) {
	tests := []struct {
		name  string
		state game.State
		cause game.Cause
		want  string
	}{
		{"ready", game.StateReady, game.CauseNone, "Press Enter to start"},
		{"paused", game.StatePaused, game.CauseNone, "PAUSED"},
		{"wall", game.StateGameOver, game.CauseWall, "You hit the wall"},
		{"self", game.StateGameOver, game.CauseSelf, "You bit yourself"},
		{"obstacle", game.StateGameOver, game.CauseObstacle, "obstacle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewScreenRenderer(core.NewScreen(80, 36))
			v := baseView()
			v.State, v.Cause = tt.state, tt.cause
			r.Render(v)
			if !strings.Contains(screenText(r), tt.want) {
				t.Errorf("screen missing %q", tt.want)
			}
		})
	}
}

func TestRenderWarnings(t *testing.T) {
	r := NewScreenRenderer(core.NewScreen(80, 36))
	v := baseView()
	v.Warnings = []string{"WALLS CLOSING IN!", "SPEED BOOST!"}
	r.Render(v)

	text := screenText(r)
	for _, w := range v.Warnings {
		if !strings.Contains(text, w) {
			t.Errorf("screen missing warning %q", w)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	r := NewScreenRenderer(core.NewScreen(40, 20))
	r.Render(baseView())
	if !strings.Contains(screenText(r), "Terminal too small") {
		t.Error("small terminal should get a notice")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorCyan)
	s.DrawTextColored(2, 0, "cd", core.ColorPink)
	out := RenderScreen(s)
	if !strings.Contains(out, "ab") || !strings.Contains(out, "cd") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("rows = %d, want 2", got+1)
	}
}
