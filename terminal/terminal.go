package terminal

import (
	"bufio"
	"io"
	"os"
	"sync"
)

// Terminal provides low-level terminal access for the frame loop
type Terminal interface {
	// Init enters raw mode and alternate screen, hides cursor, starts the input reader
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// ColorMode returns the color capability chosen at construction
	ColorMode() ColorMode

	// Output returns the buffered sink frames are written to, nothing reaches the tty until Flush
	Output() *bufio.Writer

	// Events returns the channel parsed key events are delivered on
	Events() <-chan Event
}

type termImpl struct {
	backend   Backend
	writer    *bufio.Writer
	input     *inputReader
	colorMode ColorMode

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal on stdin/stdout, color mode is detected when not given
func New(colorMode ...ColorMode) Terminal {
	c := DetectColorMode()
	if len(colorMode) > 0 {
		c = colorMode[0]
	}
	return newTerminal(newBackend(), c)
}

func newTerminal(b Backend, c ColorMode) *termImpl {
	return &termImpl{
		backend:   b,
		writer:    bufio.NewWriterSize(b, 131072), // 128KB buffer
		input:     newInputReader(b),
		colorMode: c,
	}
}

func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	w := t.writer
	w.Write(csiAltScreenEnter)
	w.Write(csiCursorHide)
	// Prevents terminal scroll/wrap on bottom-right corner write
	w.Write(csiAutoWrapOff)
	w.Write(csiSGR0)
	w.Write(csiClear)
	if err := w.Flush(); err != nil {
		t.backend.Fini()
		return err
	}

	t.input.start()

	t.initialized = true
	return nil
}

func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.input.stop()

	w := t.writer
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	// Re-enable auto-wrap after leaving alt screen so the main buffer has it
	w.Write(csiAutoWrapOn)
	w.Flush()

	t.backend.Fini()

	t.finalized = true
}

func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

func (t *termImpl) ColorMode() ColorMode {
	return t.colorMode
}

func (t *termImpl) Output() *bufio.Writer {
	return t.writer
}

func (t *termImpl) Events() <-chan Event {
	return t.input.events()
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	restoreSavedMode()
}
