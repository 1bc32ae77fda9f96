package engine

import (
	"bytes"
	"time"

	"github.com/lixenwraith/lonely-engine/input"
)

// fakeSink records presented bytes
type fakeSink struct {
	bytes.Buffer
	flushes  int
	flushErr error
}

func (s *fakeSink) Flush() error {
	s.flushes++
	return s.flushErr
}

// scriptedInput returns one snapshot per poll, then empty sets
type scriptedInput struct {
	frames []input.KeySet
	errs   []error
	polls  int
}

func (s *scriptedInput) Poll() (input.KeySet, error) {
	i := s.polls
	s.polls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.frames) {
		return s.frames[i], nil
	}
	return input.NewKeySet(), nil
}

// fakeTerminal counts Init/Fini calls
type fakeTerminal struct {
	inits   int
	finis   int
	initErr error
}

func (t *fakeTerminal) Init() error {
	t.inits++
	return t.initErr
}

func (t *fakeTerminal) Fini() {
	t.finis++
}

// newTestEngine builds an engine writing to a fake sink with pacing disabled
func newTestEngine(width, height int, opts ...Option) (*Engine, *fakeSink) {
	sink := &fakeSink{}
	base := []Option{
		WithSink(sink),
		WithFrameBudget(0),
		WithClock(NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))),
	}
	return New(width, height, append(base, opts...)...), sink
}

// commandsOnce returns cmds on the first frame only
func commandsOnce(cmds ...Command) UpdateFunc {
	done := false
	return func(e *Engine, dt time.Duration, keys input.KeySet) []Command {
		if done {
			return nil
		}
		done = true
		return cmds
	}
}
