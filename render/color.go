package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lonely-engine/terminal"
)

// Common entity colors
var (
	RgbPlayer  = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbStar    = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
	RgbText    = tcell.NewRGBColor(180, 180, 180) // Light gray
	RgbBarFill = tcell.NewRGBColor(0, 200, 0)     // Green
	RgbBarFull = tcell.NewRGBColor(220, 40, 40)   // Red
	RgbBarBg   = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
)

// ParseColor resolves a tcell color name or #rrggbb, unknown names are the default color
func ParseColor(name string) tcell.Color {
	if name == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(name)
}

// appendColor appends one SGR parameter group for c, reports false for the default color
func appendColor(dst []byte, c tcell.Color, mode terminal.ColorMode, background bool) ([]byte, bool) {
	if !c.Valid() {
		return dst, false
	}

	if !c.IsRGB() {
		// Palette color, index is stored in the low byte
		idx := uint8(c & 0xff)
		if background {
			return terminal.AppendBg256(dst, idx), true
		}
		return terminal.AppendFg256(dst, idx), true
	}

	r, g, b := c.RGB()
	rgb := terminal.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
	if mode == terminal.ColorModeTrueColor {
		if background {
			return terminal.AppendBgRGB(dst, rgb), true
		}
		return terminal.AppendFgRGB(dst, rgb), true
	}

	idx := terminal.RGBTo256(rgb)
	if background {
		return terminal.AppendBg256(dst, idx), true
	}
	return terminal.AppendFg256(dst, idx), true
}
