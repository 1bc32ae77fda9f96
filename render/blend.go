package render

import (
	"github.com/gdamore/tcell/v2"
)

func clamp(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// Lerp linearly interpolates between two colors
// t=0 returns a, t=1 returns b; a palette or default endpoint switches at t=0.5
func Lerp(a, b tcell.Color, t float64) tcell.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	if !a.IsRGB() || !b.IsRGB() {
		if t < 0.5 {
			return a
		}
		return b
	}

	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	return tcell.NewRGBColor(
		int32(clamp(float64(ar)+t*float64(br-ar))),
		int32(clamp(float64(ag)+t*float64(bg-ag))),
		int32(clamp(float64(ab)+t*float64(bb-ab))),
	)
}

// Scale multiplies all channels of an RGB color by factor, other colors are unchanged
func Scale(c tcell.Color, factor float64) tcell.Color {
	if !c.IsRGB() {
		return c
	}
	r, g, b := c.RGB()
	return tcell.NewRGBColor(
		int32(clamp(float64(r)*factor)),
		int32(clamp(float64(g)*factor)),
		int32(clamp(float64(b)*factor)),
	)
}
