package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"time"
	"unicode/utf8"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey    EventType = iota
	EventError            // Read error
	EventClosed           // Input closed
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Err       error // For EventError
}

// escapeTimeout is how long a lone ESC byte waits for the rest of a sequence
const escapeTimeout = 50 * time.Millisecond

// inputReader turns raw stdin bytes into key events on a buffered channel
type inputReader struct {
	backend Backend
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer for stream assembly, partial UTF-8 and escape sequences span reads
	buf     []byte
	escSeen time.Time
}

func newInputReader(backend Backend) *inputReader {
	return &inputReader{
		backend: backend,
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

func (r *inputReader) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	// Don't block forever if read is stuck
	select {
	case <-r.doneCh:
	case <-time.After(100 * time.Millisecond):
	}
}

func (r *inputReader) events() <-chan Event {
	return r.eventCh
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", rec)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		data, err := r.backend.Read(r.stopCh)
		if errors.Is(err, io.EOF) {
			if len(r.buf) == 1 && r.buf[0] == 0x1b {
				r.sendEvent(Event{Type: EventKey, Key: KeyEscape})
			}
			r.sendFinal(Event{Type: EventClosed})
			return
		}
		if err != nil {
			r.sendFinal(Event{Type: EventError, Err: err})
			return
		}

		if len(data) == 0 {
			select {
			case <-r.stopCh:
				r.sendEvent(Event{Type: EventClosed})
				return
			default:
			}
			// Poll timeout: a lone ESC that outlived escapeTimeout is the Escape key
			if len(r.buf) == 1 && r.buf[0] == 0x1b && time.Since(r.escSeen) >= escapeTimeout {
				r.sendEvent(Event{Type: EventKey, Key: KeyEscape})
				r.buf = r.buf[:0]
			}
			continue
		}

		r.buf = append(r.buf, data...)
		consumed := parseInput(r.buf, r.sendEvent)

		if consumed >= len(r.buf) {
			r.buf = r.buf[:0]
		} else if consumed > 0 {
			n := copy(r.buf, r.buf[consumed:])
			r.buf = r.buf[:n]
		}
		if len(r.buf) == 1 && r.buf[0] == 0x1b {
			r.escSeen = time.Now()
		}
	}
}

// sendEvent is non-blocking, events are dropped when nobody drains the channel
func (r *inputReader) sendEvent(ev Event) {
	select {
	case r.eventCh <- ev:
	default:
	}
}

// sendFinal delivers the event that ends the stream, waiting for room unless stopped
func (r *inputReader) sendFinal(ev Event) {
	select {
	case r.eventCh <- ev:
	case <-r.stopCh:
	}
}

// parseInput parses raw bytes into key events and returns bytes consumed
// Stops early on an incomplete escape or UTF-8 sequence
func parseInput(data []byte, emit func(Event)) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		switch {
		case b >= 0x20 && b < 0x7f:
			emit(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++

		case b == 0x1b:
			if i+1 >= n {
				return i
			}
			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			// Malformed sequences are swallowed
			if ev.Key != KeyNone {
				emit(ev)
			}
			i += consumed

		case b < 0x20:
			emit(parseControl(b))
			i++

		case b == 0x7f:
			emit(Event{Type: EventKey, Key: KeyBackspace})
			i++

		default:
			if !utf8.FullRune(data[i:]) {
				return i
			}
			rn, size := utf8.DecodeRune(data[i:])
			if rn != utf8.RuneError {
				emit(Event{Type: EventKey, Key: KeyRune, Rune: rn})
			}
			i += size
		}
	}
	return i
}

// parseEscape returns 0 consumed when the sequence is incomplete
func parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	switch next := data[1]; {
	case next == 0x1b:
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}
	case next == '[':
		return parseCSI(data)
	case next == 'O':
		if len(data) < 3 {
			return 0, Event{}
		}
		return 3, Event{Type: EventKey, Key: ss3Key(data[2])}
	case next < 0x20:
		ev := parseControl(next)
		ev.Modifiers |= ModAlt
		return 2, ev
	case next < 0x7f:
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(next), Modifiers: ModAlt}
	}
	return 2, Event{Type: EventKey, Key: KeyNone}
}

// parseCSI scans a CSI body up to its final byte (letter or '~')
func parseCSI(data []byte) (int, Event) {
	maxScan := min(len(data), 16)
	for end := 2; end < maxScan; end++ {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			key, mod := csiKey(data[2:end], b)
			return end + 1, Event{Type: EventKey, Key: key, Modifiers: mod}
		}
		if b < 0x20 || b > 0x7e {
			// Malformed, drop the introducer only
			return 2, Event{Type: EventKey, Key: KeyNone}
		}
	}
	if len(data) >= 16 {
		return 2, Event{Type: EventKey, Key: KeyNone}
	}
	return 0, Event{}
}

// parseControl maps C0 control bytes to keys
func parseControl(b byte) Event {
	switch b {
	case 0x00:
		return Event{Type: EventKey, Key: KeyRune, Rune: ' ', Modifiers: ModCtrl}
	case 0x08:
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d:
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x1b:
		return Event{Type: EventKey, Key: KeyEscape}
	}
	if b >= 0x01 && b <= 0x1a {
		return Event{Type: EventKey, Key: KeyRune, Rune: 'a' + rune(b-0x01), Modifiers: ModCtrl}
	}
	return Event{Type: EventKey, Key: KeyNone}
}
