package engine

import (
	"time"

	"github.com/lixenwraith/lonely-engine/input"
)

// Updatable is per-frame application logic
// The engine is passed for read access; mutations are returned as commands
type Updatable interface {
	Update(e *Engine, dt time.Duration, keys input.KeySet) []Command
}

// UpdateFunc adapts a function to Updatable
type UpdateFunc func(e *Engine, dt time.Duration, keys input.KeySet) []Command

// Update calls f
func (f UpdateFunc) Update(e *Engine, dt time.Duration, keys input.KeySet) []Command {
	return f(e, dt, keys)
}
