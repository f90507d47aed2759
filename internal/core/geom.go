// Package core provides fundamental types and utilities for the snake arcade.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Cell is a single grid coordinate. Cells compare by value.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by the given direction.
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// Manhattan returns the taxicab distance between two cells.
func (c Cell) Manhattan(other Cell) int {
	return Abs(c.X-other.X) + Abs(c.Y-other.Y)
}

// NoCell marks an absent cell (e.g. food that could not be placed).
var NoCell = Cell{X: -1, Y: -1}

// Direction is a unit step on the grid.
type Direction struct {
	X, Y int
}

// Cardinal directions.
var (
	Right = Direction{X: 1, Y: 0}
	Left  = Direction{X: -1, Y: 0}
	Down  = Direction{X: 0, Y: 1}
	Up    = Direction{X: 0, Y: -1}
)

// Horizontal reports whether the direction moves along the X axis.
func (d Direction) Horizontal() bool {
	return d.X != 0
}

// Vertical reports whether the direction moves along the Y axis.
func (d Direction) Vertical() bool {
	return d.Y != 0
}

// SameAxis reports whether both directions move along the same axis.
// The zero direction shares no axis with anything.
func (d Direction) SameAxis(other Direction) bool {
	return (d.Horizontal() && other.Horizontal()) || (d.Vertical() && other.Vertical())
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Bounds is an inclusive rectangular region of the grid.
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
}

// GridBounds returns the bounds covering a size x size grid.
func GridBounds(size int) Bounds {
	return Bounds{MinX: 0, MinY: 0, MaxX: size - 1, MaxY: size - 1}
}

// Inset shrinks the bounds by margin cells on every side.
// The result never inverts: a margin larger than half the region collapses it
// to its centre row/column.
func (b Bounds) Inset(margin int) Bounds {
	out := Bounds{
		MinX: b.MinX + margin,
		MinY: b.MinY + margin,
		MaxX: b.MaxX - margin,
		MaxY: b.MaxY - margin,
	}
	if out.MinX > out.MaxX {
		mid := (b.MinX + b.MaxX) / 2
		out.MinX, out.MaxX = mid, mid
	}
	if out.MinY > out.MaxY {
		mid := (b.MinY + b.MaxY) / 2
		out.MinY, out.MaxY = mid, mid
	}
	return out
}

// Contains returns true if the cell lies inside the bounds.
func (b Bounds) Contains(c Cell) bool {
	return c.X >= b.MinX && c.X <= b.MaxX && c.Y >= b.MinY && c.Y <= b.MaxY
}

// Width returns the number of columns in the bounds.
func (b Bounds) Width() int {
	return b.MaxX - b.MinX + 1
}

// Height returns the number of rows in the bounds.
func (b Bounds) Height() int {
	return b.MaxY - b.MinY + 1
}

// Rect represents an axis-aligned box used for screen layout.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
