package engine

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// DefaultFrameDuration is the animation interval of a new entity
const DefaultFrameDuration = 100 * time.Millisecond

// Entity is a positioned, drawable, optionally animated unit of state
// Frames holds at least one glyph; a single glyph is static
type Entity struct {
	X, Y int
	Tag  string

	Char          rune // Displayed glyph, replaced by Frames[Frame] on each advance
	Frames        []rune
	Frame         int           // Index into Frames of the displayed glyph
	FrameDuration time.Duration // Advance interval, <= 0 never advances
	AnimTimer     time.Duration // Accumulated time since the last advance

	Fg, Bg tcell.Color // tcell.ColorDefault leaves the terminal default
}

// NewEntity creates a static entity displaying glyph at x,y
func NewEntity(x, y int, glyph rune) *Entity {
	return &Entity{
		X:             x,
		Y:             y,
		Char:          glyph,
		Frames:        []rune{glyph},
		FrameDuration: DefaultFrameDuration,
		Fg:            tcell.ColorDefault,
		Bg:            tcell.ColorDefault,
	}
}

// WithFrames replaces the animation sequence and interval
// The current glyph stays displayed until the first advance
func (e *Entity) WithFrames(frames []rune, interval time.Duration) *Entity {
	if len(frames) == 0 {
		return e
	}
	e.Frames = append([]rune(nil), frames...)
	e.Frame = 0
	e.FrameDuration = interval
	e.AnimTimer = 0
	return e
}

// WithColors sets foreground and background
func (e *Entity) WithColors(fg, bg tcell.Color) *Entity {
	e.Fg = fg
	e.Bg = bg
	return e
}

// WithTag sets the collision/application tag
func (e *Entity) WithTag(tag string) *Entity {
	e.Tag = tag
	return e
}

// Glyph returns the displayed glyph
func (e *Entity) Glyph() rune {
	switch {
	case e.Char != 0:
		return e.Char
	case len(e.Frames) > 0:
		return e.Frames[e.Frame]
	}
	return ' '
}

// setGlyph makes glyph the whole, static sequence
func (e *Entity) setGlyph(glyph rune) {
	e.Char = glyph
	e.Frames = []rune{glyph}
	e.Frame = 0
}

// Animated reports whether the sequence has more than one glyph
func (e *Entity) Animated() bool {
	return len(e.Frames) > 1
}

// tick accumulates dt and advances at most one frame, resetting the accumulator
// A long stall never skips ahead more than one glyph
func (e *Entity) tick(dt time.Duration) {
	if !e.Animated() || e.FrameDuration <= 0 {
		return
	}
	e.AnimTimer += dt
	if e.AnimTimer >= e.FrameDuration {
		e.Frame = (e.Frame + 1) % len(e.Frames)
		e.Char = e.Frames[e.Frame]
		e.AnimTimer = 0
	}
}
