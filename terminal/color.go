package terminal

import (
	"fmt"
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns the config/flag spelling of the mode
func (m ColorMode) String() string {
	switch m {
	case ColorModeTrueColor:
		return "truecolor"
	default:
		return "256"
	}
}

// ParseColorMode resolves a flag or config value, "auto" and "" use DetectColorMode
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectColorMode(), nil
	case "256":
		return ColorMode256, nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	}
	return ColorMode256, fmt.Errorf("unknown color mode %q", s)
}

// truecolorHints are variables exported only by terminals with 24-bit color
var truecolorHints = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"WEZTERM_PANE",
}

// DetectColorMode reads the environment, 256 colors unless truecolor is advertised
func DetectColorMode() ColorMode {
	return detectColorMode(os.Getenv)
}

func detectColorMode(getenv func(string) string) ColorMode {
	switch strings.ToLower(getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return ColorModeTrueColor
	}
	for _, name := range truecolorHints {
		if getenv(name) != "" {
			return ColorModeTrueColor
		}
	}
	termName := strings.ToLower(getenv("TERM"))
	for _, suffix := range []string{"truecolor", "24bit", "direct"} {
		if strings.Contains(termName, suffix) {
			return ColorModeTrueColor
		}
	}
	return ColorMode256
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Color cube values for 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// cubeIndex maps 0-255 to nearest cube level 0-5
func cubeIndex(v uint8) uint8 {
	best := 0
	bestDist := abs(int(v) - int(cubeValues[0]))
	for j := 1; j < 6; j++ {
		if d := abs(int(v) - int(cubeValues[j])); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return uint8(best)
}

// RGBTo256 converts RGB to nearest 256-color palette index
// Near-gray values are matched against the grayscale ramp (232-255)
func RGBTo256(c RGB) uint8 {
	r, g, b := c.R, c.G, c.B
	cr, cg, cb := cubeIndex(r), cubeIndex(g), cubeIndex(b)

	gray := (int(r) + int(g) + int(b)) / 3
	maxDiff := max(abs(int(r)-gray), abs(int(g)-gray), abs(int(b)-gray))
	if maxDiff < 10 {
		if gray < 4 {
			return 16
		}
		if gray > 243 {
			return 231
		}
		grayIdx := 232 + (gray-8)/10
		if grayIdx > 255 {
			grayIdx = 255
		}
		grayLevel := 8 + (grayIdx-232)*10
		grayDist := abs(int(r)-grayLevel) + abs(int(g)-grayLevel) + abs(int(b)-grayLevel)
		cubeDist := abs(int(r)-int(cubeValues[cr])) +
			abs(int(g)-int(cubeValues[cg])) +
			abs(int(b)-int(cubeValues[cb]))
		if grayDist < cubeDist {
			return uint8(grayIdx)
		}
	}

	return 16 + 36*cr + 6*cg + cb
}
