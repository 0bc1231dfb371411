package core

// Color is a logical foreground color for a screen cell. Front ends map it
// to whatever their terminal supports.
type Color uint8

// Base colors first, then their bright forms, then extras.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// IsBright reports whether c is one of the bright variants. Bright tiles
// are the high values and are drawn bold.
func (c Color) IsBright() bool {
	return c >= ColorBrightRed && c <= ColorBrightWhite
}
