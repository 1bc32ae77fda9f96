package event

import (
	"fmt"
)

// Listener receives a copy of each emitted event, a non-nil error stops dispatch
type Listener func(ev Event) error

// Bus is a synchronous publish/subscribe dispatcher
//
// Architecture:
//   - Single-threaded, Emit runs every listener on the calling goroutine
//   - Listeners are invoked in registration order
//   - No event is stored; listeners cannot be removed
type Bus struct {
	listeners []Listener
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener
func (b *Bus) Subscribe(l Listener) {
	b.listeners = append(b.listeners, l)
}

// SubscribeFunc registers a listener that cannot fail
func (b *Bus) SubscribeFunc(fn func(ev Event)) {
	b.Subscribe(func(ev Event) error {
		fn(ev)
		return nil
	})
}

// Emit delivers ev to every listener and returns after the last one completes
// The first listener error aborts the remaining dispatch and is returned wrapped
func (b *Bus) Emit(ev Event) error {
	for i, l := range b.listeners {
		if err := l(ev); err != nil {
			return fmt.Errorf("listener %d on %s: %w", i, ev.Type, err)
		}
	}
	return nil
}

// Len returns the number of registered listeners
func (b *Bus) Len() int {
	return len(b.listeners)
}
