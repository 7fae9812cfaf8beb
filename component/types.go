package component

// Handle is an opaque reference to an open instance.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies an instance lifecycle notification.
type EventType uint8

const (
	EventOpened EventType = iota
	EventClosed
)

func (t EventType) String() string {
	if t == EventClosed {
		return "closed"
	}
	return "opened"
}

// Event represents an instance lifecycle event.
type Event struct {
	Component string
	Handle    Handle
	Type      EventType
}

// Observer receives notifications about instance lifecycle events.
type Observer interface {
	OnInstanceEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnInstanceEvent implements Observer.
func (f ObserverFunc) OnInstanceEvent(e Event) { f(e) }
