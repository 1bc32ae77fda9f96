package input

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/lixenwraith/lonely-engine/terminal"
)

// ErrInputClosed is returned once the terminal input stream has ended
var ErrInputClosed = errors.New("input closed")

// DefaultHoldWindow keeps a key in the snapshot between autorepeat events
const DefaultHoldWindow = 120 * time.Millisecond

// namedKeys maps terminal key classes to their snapshot key
var namedKeys = map[terminal.Key]Key{
	terminal.KeyUp:        KeyUp,
	terminal.KeyDown:      KeyDown,
	terminal.KeyLeft:      KeyLeft,
	terminal.KeyRight:     KeyRight,
	terminal.KeyEnter:     KeyEnter,
	terminal.KeyEscape:    KeyEscape,
	terminal.KeyTab:       Char('\t'),
	terminal.KeyBackspace: Char('\b'),
	terminal.KeyOther:     KeyUnknown,
}

// Translate converts one terminal key event into the keys it implies as held
// Modifier flags yield the modifier key as well, so Ctrl+c is {'c', Ctrl}
func Translate(ev terminal.Event) []Key {
	if ev.Type != terminal.EventKey || ev.Key == terminal.KeyNone {
		return nil
	}

	keys := make([]Key, 0, 2)

	if ev.Key == terminal.KeyRune {
		switch {
		case ev.Rune == ' ':
			keys = append(keys, KeySpace)
		case unicode.IsUpper(ev.Rune) && ev.Modifiers&terminal.ModShift == 0:
			keys = append(keys, Char(ev.Rune), KeyShift)
		default:
			keys = append(keys, Char(ev.Rune))
		}
	} else if named, ok := namedKeys[ev.Key]; ok {
		keys = append(keys, named)
	} else {
		keys = append(keys, KeyUnknown)
	}

	if ev.Modifiers&terminal.ModShift != 0 {
		keys = append(keys, KeyShift)
	}
	if ev.Modifiers&terminal.ModCtrl != 0 {
		keys = append(keys, KeyCtrl)
	}
	return keys
}

// TerminalSource builds key snapshots from a terminal event stream
// Terminals report presses and autorepeats but never releases, so a key stays
// in the snapshot for the hold window after its last event
type TerminalSource struct {
	events   <-chan terminal.Event
	hold     time.Duration
	now      func() time.Time
	lastSeen map[Key]time.Time
	closed   bool
}

// NewTerminalSource wraps an event channel, hold <= 0 reports only keys seen since the last poll
func NewTerminalSource(events <-chan terminal.Event, hold time.Duration) *TerminalSource {
	return &TerminalSource{
		events:   events,
		hold:     hold,
		now:      time.Now,
		lastSeen: make(map[Key]time.Time),
	}
}

// Poll drains pending events without blocking and returns the held-key snapshot
func (s *TerminalSource) Poll() (KeySet, error) {
	if s.closed {
		return nil, ErrInputClosed
	}

	now := s.now()
	snapshot := make(KeySet)

drain:
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.closed = true
				return nil, ErrInputClosed
			}
			switch ev.Type {
			case terminal.EventError:
				return nil, fmt.Errorf("terminal input: %w", ev.Err)
			case terminal.EventClosed:
				s.closed = true
				return nil, ErrInputClosed
			case terminal.EventKey:
				for _, k := range Translate(ev) {
					snapshot.Add(k)
					s.lastSeen[k] = now
				}
			}
		default:
			break drain
		}
	}

	for k, seen := range s.lastSeen {
		if now.Sub(seen) < s.hold {
			snapshot.Add(k)
		} else if !snapshot.Has(k) {
			delete(s.lastSeen, k)
		}
	}

	return snapshot, nil
}
