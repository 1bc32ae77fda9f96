package terminal

import (
	"strconv"
)

// Pre-allocated ANSI sequence fragments
var (
	csiSGR0  = []byte("\x1b[0m")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)

	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// DECAWM: ?7l disables wrapping, preventing scroll when writing to bottom-right corner
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")
)

// SGRReset is the style-reset suffix appended to every composed cell
const SGRReset = "\x1b[0m"

// AppendCursorPos appends a cursor positioning sequence (0-indexed input, 1-indexed output)
func AppendCursorPos(dst []byte, x, y int) []byte {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	dst = append(dst, '\x1b', '[')
	dst = strconv.AppendInt(dst, int64(y+1), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(x+1), 10)
	return append(dst, 'H')
}

// AppendFg256 appends a 256-palette foreground parameter group without CSI prefix
func AppendFg256(dst []byte, idx uint8) []byte {
	dst = append(dst, "38;5;"...)
	return strconv.AppendUint(dst, uint64(idx), 10)
}

// AppendBg256 appends a 256-palette background parameter group without CSI prefix
func AppendBg256(dst []byte, idx uint8) []byte {
	dst = append(dst, "48;5;"...)
	return strconv.AppendUint(dst, uint64(idx), 10)
}

// AppendFgRGB appends a truecolor foreground parameter group without CSI prefix
func AppendFgRGB(dst []byte, c RGB) []byte {
	dst = append(dst, "38;2;"...)
	return appendRGB(dst, c)
}

// AppendBgRGB appends a truecolor background parameter group without CSI prefix
func AppendBgRGB(dst []byte, c RGB) []byte {
	dst = append(dst, "48;2;"...)
	return appendRGB(dst, c)
}

func appendRGB(dst []byte, c RGB) []byte {
	dst = strconv.AppendUint(dst, uint64(c.R), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.G), 10)
	dst = append(dst, ';')
	return strconv.AppendUint(dst, uint64(c.B), 10)
}
