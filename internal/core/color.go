package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorGray
	ColorCyan    // snake head
	ColorPurple  // snake body
	ColorPink    // food
	ColorRed     // obstacles
	ColorGreen   // portals
	ColorYellow  // warnings, boosted head
	ColorBlue    // grid border
	ColorWhite   // HUD text
	ColorMagenta // particles
)
