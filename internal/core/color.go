package core

// Color represents a foreground color for a screen cell.
type Color uint8

// Palette used by the terminal renderer. The renderer maps these onto
// ANSI 256-colour codes.
const (
	ColorDefault Color = iota
	ColorGround
	ColorPlatform
	ColorHazard
	ColorMemory
	ColorGoal
	ColorPlayer
	ColorPlayerHurt
	ColorHeart
	ColorDim
	ColorOverlay
	ColorAccent
)
