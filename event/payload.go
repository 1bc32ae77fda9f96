package event

import (
	"fmt"

	"github.com/lixenwraith/lonely-engine/input"
)

// Event is an immutable notification, listeners receive a copy
type Event struct {
	Type    EventType
	Frame   uint64 // Engine frame counter at publication, 0 outside the loop
	Payload any
}

// KeyPayload identifies the key of a key event
type KeyPayload struct {
	Key input.Key
}

// ObjectPayload identifies an entity by its list index at publication time
type ObjectPayload struct {
	Index int
	X, Y  int
}

// CustomPayload is an application-defined tag with optional data
type CustomPayload struct {
	Name string
	Data any
}

// KeyEvent builds a key event of the given transition type
func KeyEvent(t EventType, k input.Key) Event {
	return Event{Type: t, Payload: KeyPayload{Key: k}}
}

// ObjectEvent builds a spawned/moved event
func ObjectEvent(t EventType, index, x, y int) Event {
	return Event{Type: t, Payload: ObjectPayload{Index: index, X: x, Y: y}}
}

// Custom builds an application-defined event
func Custom(name string, data any) Event {
	return Event{Type: EventCustom, Payload: CustomPayload{Name: name, Data: data}}
}

// Key returns the key of a key event
func (e Event) Key() (input.Key, bool) {
	p, ok := e.Payload.(KeyPayload)
	return p.Key, ok
}

// Object returns the payload of a spawned/moved event
func (e Event) Object() (ObjectPayload, bool) {
	p, ok := e.Payload.(ObjectPayload)
	return p, ok
}

func (e Event) String() string {
	switch p := e.Payload.(type) {
	case KeyPayload:
		return fmt.Sprintf("%s(%s)", e.Type, p.Key)
	case ObjectPayload:
		return fmt.Sprintf("%s(#%d @ %d,%d)", e.Type, p.Index, p.X, p.Y)
	case CustomPayload:
		return fmt.Sprintf("%s(%s)", e.Type, p.Name)
	}
	return e.Type.String()
}
