package event

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lixenwraith/lonely-engine/input"
)

// TestBusOrdering verifies listeners run in registration order
func TestBusOrdering(t *testing.T) {
	bus := NewBus()
	var log []string

	bus.SubscribeFunc(func(ev Event) { log = append(log, "L1") })
	bus.SubscribeFunc(func(ev Event) { log = append(log, "L2") })
	bus.SubscribeFunc(func(ev Event) { log = append(log, "L3") })

	if err := bus.Emit(Custom("tick", nil)); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	want := []string{"L1", "L2", "L3"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("dispatch order = %v, want %v", log, want)
	}
}

// TestBusListenerErrorAborts verifies a failing listener stops dispatch and the error propagates
func TestBusListenerErrorAborts(t *testing.T) {
	bus := NewBus()
	boom := errors.New("boom")
	var log []string

	bus.SubscribeFunc(func(ev Event) { log = append(log, "L1") })
	bus.Subscribe(func(ev Event) error {
		log = append(log, "L2")
		return boom
	})
	bus.SubscribeFunc(func(ev Event) { log = append(log, "L3") })

	err := bus.Emit(KeyEvent(EventKeyPressed, input.KeySpace))
	if !errors.Is(err, boom) {
		t.Fatalf("Emit() error = %v, want %v", err, boom)
	}
	if !reflect.DeepEqual(log, []string{"L1", "L2"}) {
		t.Errorf("listeners run = %v, L3 must not run", log)
	}

	// The bus stays usable, next emit reaches L1 and L2 again
	log = nil
	bus.Emit(Custom("again", nil))
	if !reflect.DeepEqual(log, []string{"L1", "L2"}) {
		t.Errorf("second emit ran %v", log)
	}
}

// TestBusNoUnsubscribe documents the known limitation that listeners live as long as the bus
func TestBusNoUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	bus.SubscribeFunc(func(ev Event) { calls++ })

	for i := 0; i < 3; i++ {
		bus.Emit(Custom("x", i))
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if bus.Len() != 1 {
		t.Errorf("Len() = %d, want 1", bus.Len())
	}
}

// TestBusListenerGetsCopy verifies a listener mutating its argument cannot affect later listeners
func TestBusListenerGetsCopy(t *testing.T) {
	bus := NewBus()
	var seen EventType

	bus.SubscribeFunc(func(ev Event) { ev.Type = EventCustom })
	bus.SubscribeFunc(func(ev Event) { seen = ev.Type })

	bus.Emit(ObjectEvent(EventObjectMoved, 1, 2, 3))
	if seen != EventObjectMoved {
		t.Errorf("second listener saw %v, want %v", seen, EventObjectMoved)
	}
}

func TestEmitEmptyBus(t *testing.T) {
	if err := NewBus().Emit(Custom("nobody", nil)); err != nil {
		t.Errorf("Emit() on empty bus = %v", err)
	}
}

func TestEventAccessors(t *testing.T) {
	ev := KeyEvent(EventKeyHeld, input.Char('q'))
	if k, ok := ev.Key(); !ok || k != input.Char('q') {
		t.Errorf("Key() = %v, %v", k, ok)
	}
	if _, ok := ev.Object(); ok {
		t.Error("Object() on key event should be false")
	}
	if ev.String() != "KeyHeld('q')" {
		t.Errorf("String() = %q", ev.String())
	}

	moved := ObjectEvent(EventObjectMoved, 2, 5, 6)
	if p, ok := moved.Object(); !ok || p.Index != 2 || p.X != 5 || p.Y != 6 {
		t.Errorf("Object() = %+v, %v", p, ok)
	}

	if et, ok := GetEventType("keypressed"); !ok || et != EventKeyPressed {
		t.Errorf("GetEventType(keypressed) = %v, %v", et, ok)
	}
}
