package core

// Color is the foreground color of a screen cell.
type Color uint8

// Palette used by the game and menus.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorWhite
	ColorBrightYellow
	ColorGray
)
