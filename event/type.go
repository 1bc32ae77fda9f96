// Package event defines the notifications published during a frame and the
// synchronous bus that delivers them.
package event

// EventType represents the type of engine event
type EventType int

const (
	// EventObjectSpawned signals an entity appended to the object list
	// Trigger: spawn command applied | Payload: ObjectPayload (X, Y = spawn position)
	EventObjectSpawned EventType = iota

	// EventObjectMoved signals an entity position change
	// Trigger: move command applied | Payload: ObjectPayload (post-clamp X, Y)
	EventObjectMoved

	// EventInputReceived is a catch-all key notification for application use
	// The loop itself publishes the three transition types below | Payload: KeyPayload
	EventInputReceived

	// EventKeyPressed signals a key down this frame and up last frame
	// Trigger: transition detection, before update handlers | Payload: KeyPayload
	EventKeyPressed

	// EventKeyHeld signals a key down this frame and last frame
	// Trigger: transition detection, every frame while held | Payload: KeyPayload
	EventKeyHeld

	// EventKeyReleased signals a key down last frame and up this frame
	// Trigger: transition detection | Payload: KeyPayload
	EventKeyReleased

	// EventCustom carries an application-defined notification | Payload: CustomPayload
	EventCustom
)
