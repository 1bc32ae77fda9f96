package engine

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lonely-engine/event"
	"github.com/lixenwraith/lonely-engine/input"
	"github.com/lixenwraith/lonely-engine/render"
	"github.com/lixenwraith/lonely-engine/status"
	"github.com/lixenwraith/lonely-engine/terminal"
)

// DefaultFrameBudget is the target frame duration (~30 Hz)
const DefaultFrameBudget = 33 * time.Millisecond

// KeySource reports the keys held at the poll instant without blocking
type KeySource interface {
	Poll() (input.KeySet, error)
}

// Terminal is the display mode collaborator bracketing Run
type Terminal interface {
	Init() error
	Fini()
}

// Option configures an Engine
type Option func(*Engine)

// WithInput sets the key source, nil reports no keys
func WithInput(src KeySource) Option {
	return func(e *Engine) { e.input = src }
}

// WithTerminal sets the terminal initialized before and restored after Run
func WithTerminal(t Terminal) Option {
	return func(e *Engine) { e.term = t }
}

// WithSink sets the renderer output, default is buffered stdout
func WithSink(s render.Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithClock replaces the system clock
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithFrameBudget sets the pacing target, <= 0 disables pacing
func WithFrameBudget(d time.Duration) Option {
	return func(e *Engine) { e.budget = d }
}

// WithPresentMode selects full or change-only presentation
func WithPresentMode(m render.PresentMode) Option {
	return func(e *Engine) { e.presentMode = m }
}

// WithColorMode sets the palette used to compose entity cells
func WithColorMode(m terminal.ColorMode) Option {
	return func(e *Engine) { e.colorMode = m }
}

// WithStatus publishes loop metrics into stats instead of a private instance
func WithStatus(stats *status.LoopStats) Option {
	return func(e *Engine) { e.stats = stats }
}

// Engine owns the entity list and drives the fixed-cadence frame cycle
//
// Frame cycle (single goroutine):
//   - Poll input, measure delta, publish key transitions
//   - Tick animations, run updatables, apply queued commands
//   - Render every entity in list order, present, sleep the remaining budget
type Engine struct {
	width  int
	height int

	running atomic.Bool

	objects    []*Entity
	updatables []Updatable
	commands   []Command

	bus      *event.Bus
	renderer *render.Renderer

	input KeySource
	term  Terminal
	clock Clock
	sink  render.Sink

	budget      time.Duration
	presentMode render.PresentMode
	colorMode   terminal.ColorMode

	previous input.KeySet
	current  input.KeySet

	frame    uint64
	lastTime time.Time
	finished bool

	stats *status.LoopStats
}

// New creates an engine for a fixed width x height grid, running until a quit command
func New(width, height int, opts ...Option) *Engine {
	e := &Engine{
		width:     width,
		height:    height,
		bus:       event.NewBus(),
		clock:     NewSystemClock(),
		budget:    DefaultFrameBudget,
		colorMode: terminal.ColorModeTrueColor,
		previous:  input.NewKeySet(),
		current:   input.NewKeySet(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sink == nil {
		e.sink = bufio.NewWriterSize(os.Stdout, 64*1024)
	}
	if e.stats == nil {
		e.stats = status.NewLoopStats()
	}

	e.renderer = render.NewRenderer(width, height, e.sink,
		render.WithPresentMode(e.presentMode),
		render.WithColorMode(e.colorMode),
	)
	e.running.Store(true)
	return e
}

// Width returns the grid width
func (e *Engine) Width() int { return e.width }

// Height returns the grid height
func (e *Engine) Height() int { return e.height }

// Bus returns the notification bus
func (e *Engine) Bus() *event.Bus { return e.bus }

// Renderer returns the frame renderer
func (e *Engine) Renderer() *render.Renderer { return e.renderer }

// Status returns the loop counters
func (e *Engine) Status() *status.LoopStats { return e.stats }

// Frame returns the number of completed frames
func (e *Engine) Frame() uint64 { return e.frame }

// Keys returns the key snapshot of the current frame
func (e *Engine) Keys() input.KeySet { return e.current }

// IsRunning reports whether the loop continues after the current frame
func (e *Engine) IsRunning() bool { return e.running.Load() }

// Stop ends the loop after the current frame, safe from any goroutine
func (e *Engine) Stop() { e.running.Store(false) }

// AddUpdatable registers per-frame logic, invoked in registration order
func (e *Engine) AddUpdatable(u Updatable) {
	e.updatables = append(e.updatables, u)
}

// AddObject appends an entity outside the command queue and returns its index
func (e *Engine) AddObject(obj *Entity) int {
	e.objects = append(e.objects, obj)
	return len(e.objects) - 1
}

// Objects returns the entity list, callers must not modify its structure
func (e *Engine) Objects() []*Entity {
	return e.objects
}

// Object returns the entity at index or nil
func (e *Engine) Object(index int) *Entity {
	if index < 0 || index >= len(e.objects) {
		return nil
	}
	return e.objects[index]
}

// Run initializes the terminal, loops until a quit command and restores the terminal
// A present or listener failure ends the loop and is returned after teardown
func (e *Engine) Run() error {
	if e.term != nil {
		if err := e.term.Init(); err != nil {
			return fmt.Errorf("terminal init: %w", err)
		}
	}
	defer e.teardown()

	e.lastTime = e.clock.Now()
	for e.running.Load() {
		start := e.clock.Now()

		keys := e.poll()
		now := e.clock.Now()
		dt := now.Sub(e.lastTime)
		e.lastTime = now

		if err := e.step(keys, dt); err != nil {
			e.running.Store(false)
			return err
		}

		work := e.clock.Now().Sub(start)
		e.stats.FrameWorked(work)

		// No pacing after the final frame
		if e.budget > 0 && e.running.Load() {
			if remaining := e.budget - work; remaining > 0 {
				e.clock.Sleep(remaining)
			} else {
				e.stats.Overrun()
			}
		}
	}
	return nil
}

// Tick runs one frame with the given delta and no pacing
func (e *Engine) Tick(dt time.Duration) error {
	return e.step(e.poll(), dt)
}

// teardown restores the terminal exactly once
func (e *Engine) teardown() {
	if e.finished {
		return
	}
	e.finished = true
	if e.term != nil {
		e.term.Fini()
	}
}

// poll returns the current key snapshot, a failed poll is an empty set
func (e *Engine) poll() input.KeySet {
	if e.input == nil {
		return input.NewKeySet()
	}
	keys, err := e.input.Poll()
	if err != nil {
		e.stats.InputFailed()
		log.Printf("[ENGINE] input poll: %v", err)
		return input.NewKeySet()
	}
	if keys == nil {
		return input.NewKeySet()
	}
	return keys
}

func (e *Engine) step(keys input.KeySet, dt time.Duration) error {
	e.frame++
	e.stats.FrameStarted()
	e.current = keys

	if err := e.publishTransitions(input.Diff(e.current, e.previous)); err != nil {
		return err
	}
	e.previous = e.current

	e.commands = e.commands[:0]

	for _, obj := range e.objects {
		obj.tick(dt)
	}

	for _, u := range e.updatables {
		e.commands = append(e.commands, u.Update(e, dt, e.current)...)
	}

	e.stats.CommandsQueued(len(e.commands))
	if err := e.applyCommands(); err != nil {
		return err
	}
	e.commands = e.commands[:0]

	return e.render()
}

func (e *Engine) publishTransitions(t input.Transitions) error {
	groups := [...]struct {
		typ  event.EventType
		keys input.KeySet
	}{
		{event.EventKeyPressed, t.Pressed},
		{event.EventKeyHeld, t.Held},
		{event.EventKeyReleased, t.Released},
	}

	for _, g := range groups {
		for _, k := range g.keys.Sorted() {
			if err := e.emit(event.KeyEvent(g.typ, k)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) emit(ev event.Event) error {
	ev.Frame = e.frame
	if err := e.bus.Emit(ev); err != nil {
		return fmt.Errorf("frame %d: %w", e.frame, err)
	}
	return nil
}

func (e *Engine) applyCommands() error {
	for _, cmd := range e.commands {
		switch cmd.Type {
		case CommandSpawn:
			if cmd.Entity == nil {
				continue
			}
			e.objects = append(e.objects, cmd.Entity)
			idx := len(e.objects) - 1
			if err := e.emit(event.ObjectEvent(event.EventObjectSpawned, idx, cmd.Entity.X, cmd.Entity.Y)); err != nil {
				return err
			}

		case CommandDespawn:
			if cmd.Index < 0 || cmd.Index >= len(e.objects) {
				continue
			}
			copy(e.objects[cmd.Index:], e.objects[cmd.Index+1:])
			e.objects[len(e.objects)-1] = nil
			e.objects = e.objects[:len(e.objects)-1]

		case CommandMove:
			if cmd.Index < 0 || cmd.Index >= len(e.objects) {
				continue
			}
			obj := e.objects[cmd.Index]
			obj.X = clamp(obj.X+cmd.DX, 0, e.width-1)
			obj.Y = clamp(obj.Y+cmd.DY, 0, e.height-1)
			if err := e.emit(event.ObjectEvent(event.EventObjectMoved, cmd.Index, obj.X, obj.Y)); err != nil {
				return err
			}

		case CommandQuit:
			e.running.Store(false)
		}
	}
	return nil
}

func (e *Engine) render() error {
	e.renderer.ClearBack()
	for _, obj := range e.objects {
		e.renderer.SetGlyph(obj.X, obj.Y, obj.Glyph(), obj.Fg, obj.Bg)
	}
	return e.renderer.Present()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
