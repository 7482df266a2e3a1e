package core

// Color is a foreground color for a screen cell, given as an ANSI 256-color
// code. The zero value is the terminal's default color, so black (code 0)
// cannot be drawn.
type Color uint8

// Colors used by the game.
const (
	ColorDefault      Color = 0
	ColorRed          Color = 1
	ColorGreen        Color = 2
	ColorYellow       Color = 3
	ColorBlue         Color = 4
	ColorMagenta      Color = 5
	ColorCyan         Color = 6
	ColorWhite        Color = 7
	ColorBrightRed    Color = 9
	ColorBrightGreen  Color = 10
	ColorBrightYellow Color = 11
	ColorBrightBlue   Color = 12
	ColorBrightWhite  Color = 15
	ColorOrange       Color = 208
	ColorGold         Color = 220
	ColorDarkGray     Color = 238
	ColorGray         Color = 245
)
