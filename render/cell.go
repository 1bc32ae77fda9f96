package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lonely-engine/terminal"
)

// Blank is the empty cell, presented as a space
const Blank = ""

// Compose builds a cell string: one combined SGR sequence when any color is set,
// then the glyph, then the style reset
func Compose(glyph rune, fg, bg tcell.Color, mode terminal.ColorMode) string {
	buf := make([]byte, 0, 32)

	params := make([]byte, 0, 24)
	params, hasFg := appendColor(params, fg, mode, false)
	if hasFg {
		params = append(params, ';')
	}
	params, hasBg := appendColor(params, bg, mode, true)
	if hasFg && !hasBg {
		params = params[:len(params)-1]
	}

	if hasFg || hasBg {
		buf = append(buf, '\x1b', '[')
		buf = append(buf, params...)
		buf = append(buf, 'm')
	}

	buf = append(buf, string(glyph)...)
	buf = append(buf, terminal.SGRReset...)
	return string(buf)
}
