package resource

// Handle is a stable integer identity for a boxed value held by a Table.
// Handle 0 is reserved and means "no value".
type Handle uint32

// Event types for reference lifecycle notifications.
type EventType uint8

const (
	EventAcquired EventType = iota
	EventRetained
	EventReleased
	EventFreed
)

func (t EventType) String() string {
	switch t {
	case EventAcquired:
		return "acquired"
	case EventRetained:
		return "retained"
	case EventReleased:
		return "released"
	case EventFreed:
		return "freed"
	default:
		return "unknown"
	}
}

// Event represents a reference lifecycle event. Refs is the reference count
// after the operation.
type Event struct {
	Value  any
	Handle Handle
	Refs   uint32
	Type   EventType
}

// Observer receives notifications about reference lifecycle events.
// Notifications are delivered after the table lock is released.
type Observer interface {
	OnResourceEvent(Event)
}

// Dropper is optionally implemented by values that need cleanup once their
// last reference is released.
type Dropper interface {
	Drop()
}
