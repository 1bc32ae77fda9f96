package event

import (
	"fmt"
	"strings"
)

var (
	nameToType = make(map[string]EventType)
	typeToName = make(map[EventType]string)
)

func init() {
	RegisterType("ObjectSpawned", EventObjectSpawned)
	RegisterType("ObjectMoved", EventObjectMoved)
	RegisterType("InputReceived", EventInputReceived)
	RegisterType("KeyPressed", EventKeyPressed)
	RegisterType("KeyHeld", EventKeyHeld)
	RegisterType("KeyReleased", EventKeyReleased)
	RegisterType("Custom", EventCustom)
}

// RegisterType maps a name to an EventType, used for logging and CLI filters
func RegisterType(name string, et EventType) {
	nameToType[strings.ToLower(name)] = et
	typeToName[et] = name
}

// GetEventType returns the EventType for a case-insensitive name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[strings.ToLower(name)]
	return et, ok
}

func (t EventType) String() string {
	if name, ok := typeToName[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}
