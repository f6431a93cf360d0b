package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors.
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

// teamPalette is the rotation used to tell tanks and teams apart.
var teamPalette = []Color{
	ColorBrightRed,
	ColorBrightBlue,
	ColorBrightGreen,
	ColorBrightYellow,
	ColorBrightMagenta,
	ColorBrightCyan,
	ColorOrange,
	ColorWhite,
}

// PaletteColor returns the i-th color of the team palette, wrapping around.
func PaletteColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return teamPalette[i%len(teamPalette)]
}
