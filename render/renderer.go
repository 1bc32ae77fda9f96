package render

import (
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lonely-engine/terminal"
)

// Sink receives presented frames, *bufio.Writer satisfies it
type Sink interface {
	io.Writer
	Flush() error
}

// PresentMode selects how much of the back grid Present emits
type PresentMode uint8

const (
	// PresentFull re-emits every cell each frame
	PresentFull PresentMode = iota
	// PresentChanged emits only cells that differ from the front grid
	PresentChanged
)

// String returns the config name of the mode
func (m PresentMode) String() string {
	switch m {
	case PresentFull:
		return "full"
	case PresentChanged:
		return "changed"
	default:
		return fmt.Sprintf("PresentMode(%d)", uint8(m))
	}
}

// ParsePresentMode maps a config name to a PresentMode, empty selects full
func ParsePresentMode(s string) (PresentMode, error) {
	switch s {
	case "", "full":
		return PresentFull, nil
	case "changed", "diff":
		return PresentChanged, nil
	default:
		return PresentFull, fmt.Errorf("unknown present mode %q", s)
	}
}

// Option configures a Renderer
type Option func(*Renderer)

// WithPresentMode sets the emission strategy
func WithPresentMode(m PresentMode) Option {
	return func(r *Renderer) { r.mode = m }
}

// WithColorMode sets the palette used by SetGlyph
func WithColorMode(m terminal.ColorMode) Option {
	return func(r *Renderer) { r.colorMode = m }
}

// Renderer is a double-buffered cell grid. Callers write into the back grid,
// Present emits it to the sink and promotes it to the front grid.
// Dimensions are fixed at construction.
type Renderer struct {
	width  int
	height int

	front []string
	back  []string

	sink      Sink
	mode      PresentMode
	colorMode terminal.ColorMode

	// synced is false until a frame has been fully presented
	synced bool
	buf    []byte
}

// NewRenderer creates a renderer with blank front and back grids
func NewRenderer(width, height int, sink Sink, opts ...Option) *Renderer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	r := &Renderer{
		width:     width,
		height:    height,
		front:     make([]string, width*height),
		back:      make([]string, width*height),
		sink:      sink,
		mode:      PresentFull,
		colorMode: terminal.ColorModeTrueColor,
		buf:       make([]byte, 0, width*height*16),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Width returns the grid width in cells
func (r *Renderer) Width() int { return r.width }

// Height returns the grid height in cells
func (r *Renderer) Height() int { return r.height }

// Mode returns the configured present mode
func (r *Renderer) Mode() PresentMode { return r.mode }

// ColorMode returns the palette used for composed cells
func (r *Renderer) ColorMode() terminal.ColorMode { return r.colorMode }

func (r *Renderer) inBounds(col, row int) bool {
	return col >= 0 && col < r.width && row >= 0 && row < r.height
}

// ClearBack resets every back cell to blank
func (r *Renderer) ClearBack() {
	for i := range r.back {
		r.back[i] = Blank
	}
}

// SetCell writes a composed cell into the back grid, out of range is a no-op
func (r *Renderer) SetCell(col, row int, cell string) {
	if !r.inBounds(col, row) {
		return
	}
	r.back[row*r.width+col] = cell
}

// SetGlyph composes glyph and colors with the renderer's color mode and writes it
func (r *Renderer) SetGlyph(col, row int, glyph rune, fg, bg tcell.Color) {
	if !r.inBounds(col, row) {
		return
	}
	r.back[row*r.width+col] = Compose(glyph, fg, bg, r.colorMode)
}

// Back returns the back cell at col,row, blank when out of range
func (r *Renderer) Back(col, row int) string {
	if !r.inBounds(col, row) {
		return Blank
	}
	return r.back[row*r.width+col]
}

// Front returns the last presented cell at col,row, blank when out of range
func (r *Renderer) Front(col, row int) string {
	if !r.inBounds(col, row) {
		return Blank
	}
	return r.front[row*r.width+col]
}

// Present emits the back grid row-major as cursor position plus content, flushes
// the sink, and promotes back to front on success. Blank cells emit a space.
// In PresentChanged mode cells equal to the front grid are skipped once a frame
// has been presented in full.
func (r *Renderer) Present() error {
	full := r.mode == PresentFull || !r.synced

	buf := r.buf[:0]
	for row := 0; row < r.height; row++ {
		base := row * r.width
		for col := 0; col < r.width; col++ {
			cell := r.back[base+col]
			if !full && cell == r.front[base+col] {
				continue
			}
			buf = terminal.AppendCursorPos(buf, col, row)
			if cell == Blank {
				buf = append(buf, ' ')
			} else {
				buf = append(buf, cell...)
			}
		}
	}
	r.buf = buf

	if len(buf) > 0 {
		if _, err := r.sink.Write(buf); err != nil {
			return fmt.Errorf("present write: %w", err)
		}
	}
	if err := r.sink.Flush(); err != nil {
		return fmt.Errorf("present flush: %w", err)
	}

	copy(r.front, r.back)
	r.synced = true
	return nil
}

// Invalidate forces the next Present to emit every cell
func (r *Renderer) Invalidate() {
	r.synced = false
}
