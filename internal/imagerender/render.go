// Package imagerender draws game frames as PNG images.
package imagerender

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/neon-snake/internal/core"
	"github.com/vovakirdan/neon-snake/internal/game"
)

// DefaultTile is the edge of one grid cell in pixels.
const DefaultTile = 24

// Palette, as hex colors.
const (
	Background = "#0a0a1a"
	SnakeHead  = "#00f3ff"
	SnakeBody  = "#b026ff"
	Food       = "#ff0080"
	FoodGlow   = "#ff00ff"
	Obstacle   = "#ff3333"
	Portal     = "#00ff88"
	Warning    = "#ffff00"
)

// Renderer draws a View onto an image.
type Renderer struct {
	Tile int
}

// New returns a renderer; tile <= 0 uses DefaultTile.
func New(tile int) *Renderer {
	if tile <= 0 {
		tile = DefaultTile
	}
	return &Renderer{Tile: tile}
}

// Draw renders v. A blurred view is blurred the same way on screen.
func (r *Renderer) Draw(v game.View) image.Image {
	size := v.GridSize * r.Tile
	dc := gg.NewContext(size, size)

	dc.SetHexColor(Background)
	dc.Clear()
	r.grid(dc, v.GridSize)
	if v.Shrunk {
		r.shrunk(dc, v)
	}

	for _, c := range v.Obstacles {
		dc.SetHexColor(Obstacle)
		r.square(dc, c, 2)
		dc.Fill()
	}
	for _, c := range v.Portals {
		x, y := r.center(c)
		dc.SetHexColor(Portal)
		dc.SetLineWidth(3)
		dc.DrawCircle(x, y, float64(r.Tile)/2-3)
		dc.Stroke()
		dc.DrawCircle(x, y, float64(r.Tile)/6)
		dc.Fill()
	}
	if v.Food != core.NoCell {
		x, y := r.center(v.Food)
		dc.SetHexColor(Food)
		dc.DrawCircle(x, y, float64(r.Tile)/2-2)
		dc.Fill()
	}

	for i := len(v.Snake) - 1; i >= 0; i-- {
		switch {
		case i > 0:
			dc.SetHexColor(SnakeBody)
		case v.Boost:
			dc.SetHexColor(Warning)
		default:
			dc.SetHexColor(SnakeHead)
		}
		r.square(dc, v.Snake[i], 1)
		dc.Fill()
	}

	for _, p := range v.Particles {
		dc.SetRGBA(1, 0, 1, p.Life)
		dc.DrawCircle((p.X+0.5)*float64(r.Tile), (p.Y+0.5)*float64(r.Tile), float64(r.Tile)/8)
		dc.Fill()
	}

	var img image.Image = dc.Image()
	if v.Blur && v.BlurAmount > 0 {
		img = imaging.Blur(img, float64(v.BlurAmount)/2)
	}
	return r.hud(img, v)
}

func (r *Renderer) grid(dc *gg.Context, n int) {
	dc.SetRGBA(0, 243.0/255, 1, 0.05)
	dc.SetLineWidth(1)
	for i := 0; i <= n; i++ {
		p := float64(i * r.Tile)
		dc.DrawLine(p, 0, p, float64(n*r.Tile))
		dc.DrawLine(0, p, float64(n*r.Tile), p)
	}
	dc.Stroke()
}

// shrunk shades the cells outside the active bounds.
func (r *Renderer) shrunk(dc *gg.Context, v game.View) {
	dc.SetRGBA(1, 0.2, 0.2, 0.15)
	for y := 0; y < v.GridSize; y++ {
		for x := 0; x < v.GridSize; x++ {
			c := core.Cell{X: x, Y: y}
			if !v.Bounds.Contains(c) {
				r.square(dc, c, 0)
			}
		}
	}
	dc.Fill()

	dc.SetHexColor(Obstacle)
	dc.SetLineWidth(2)
	dc.DrawRectangle(
		float64(v.Bounds.MinX*r.Tile), float64(v.Bounds.MinY*r.Tile),
		float64(v.Bounds.Width()*r.Tile), float64(v.Bounds.Height()*r.Tile),
	)
	dc.Stroke()
}

// hud writes the score and warnings on top, never blurred.
func (r *Renderer) hud(img image.Image, v game.View) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetHexColor("#ffffff")
	dc.DrawString("SCORE "+strconv.Itoa(v.Score), 6, 16)
	dc.DrawStringAnchored("HI "+strconv.Itoa(v.HighScore), float64(dc.Width()-6), 16, 1, 0)

	dc.SetHexColor(Warning)
	for i, w := range v.Warnings {
		dc.DrawStringAnchored(w, float64(dc.Width())/2, float64(dc.Height())/2+float64(i*16), 0.5, 0.5)
	}
	return dc.Image()
}

func (r *Renderer) square(dc *gg.Context, c core.Cell, inset float64) {
	t := float64(r.Tile)
	if inset == 0 {
		dc.DrawRectangle(float64(c.X)*t, float64(c.Y)*t, t, t)
		return
	}
	dc.DrawRoundedRectangle(float64(c.X)*t+inset, float64(c.Y)*t+inset, t-2*inset, t-2*inset, t/6)
}

func (r *Renderer) center(c core.Cell) (float64, float64) {
	t := float64(r.Tile)
	return (float64(c.X) + 0.5) * t, (float64(c.Y) + 0.5) * t
}

// Encode writes v as a PNG.
func (r *Renderer) Encode(w io.Writer, v game.View) error {
	return imaging.Encode(w, r.Draw(v), imaging.PNG)
}

// Screenshot saves v to dir as neonsnake-YYYYMMDD-HHMMSS.png and returns the path.
func (r *Renderer) Screenshot(dir string, v game.View, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("imagerender: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, "neonsnake-"+at.Format("20060102-150405")+".png")
	if err := imaging.Save(r.Draw(v), path); err != nil {
		return "", fmt.Errorf("imagerender: save %s: %w", path, err)
	}
	return path, nil
}
