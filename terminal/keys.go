package terminal

import (
	"bytes"
	"strconv"
)

// Key classifies a parsed input key
// Only the classes a key snapshot tells apart get their own value
type Key uint8

const (
	KeyNone Key = iota // Swallowed input, never emitted
	KeyRune            // Character in Event.Rune; Ctrl+letter is the lowercase letter with ModCtrl
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyOther // Complete sequence with no class of its own: function, navigation, editing keys
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// cursorKey maps the final byte shared by CSI and SS3 cursor sequences
func cursorKey(final byte) (Key, bool) {
	switch final {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	}
	return KeyNone, false
}

// xtermModifier decodes the modifier parameter, encoded as 1 + (shift | alt<<1 | ctrl<<2)
func xtermModifier(param int) Modifier {
	if param < 2 {
		return ModNone
	}
	return Modifier(param-1) & (ModShift | ModAlt | ModCtrl)
}

// csiKey classifies a complete CSI sequence from its parameter bytes and final byte
func csiKey(params []byte, final byte) (Key, Modifier) {
	mod := ModNone
	if i := bytes.IndexByte(params, ';'); i >= 0 {
		if n, err := strconv.Atoi(string(params[i+1:])); err == nil {
			mod = xtermModifier(n)
		}
	}

	if final == 'Z' {
		return KeyTab, mod | ModShift
	}
	if key, ok := cursorKey(final); ok {
		return key, mod
	}
	return KeyOther, mod
}

// ss3Key classifies ESC O <final>, sent by keypads in application mode
func ss3Key(final byte) Key {
	if key, ok := cursorKey(final); ok {
		return key
	}
	return KeyOther
}
