package fsm

// EventType identifies a manager lifecycle notification.
type EventType int

const (
	EventStateChanged EventType = iota
	EventStatePaused
	EventStateResumed
	EventTransitionError
	EventUpdateError
	EventRenderError
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventStateChanged:
		return "stateChanged"
	case EventStatePaused:
		return "statePaused"
	case EventStateResumed:
		return "stateResumed"
	case EventTransitionError:
		return "transitionError"
	case EventUpdateError:
		return "updateError"
	case EventRenderError:
		return "renderError"
	default:
		return "unknown"
	}
}

// Event is a manager notification delivered to subscribers.
type Event struct {
	Type EventType

	// From and To are set for EventStateChanged.
	From string
	To   string

	// State is the state concerned, for pause/resume/error events.
	State string

	// Err carries the failure for error events.
	Err error
}

// subscribers is an explicit callback registration table owned by a single
// Manager. It is torn down with the manager, so no subscription outlives
// the component that accepted it.
type subscribers struct {
	byType map[EventType]map[int]func(Event)
	nextID int
}

func newSubscribers() *subscribers {
	return &subscribers{byType: make(map[EventType]map[int]func(Event))}
}

// add registers fn for events of type t and returns an unsubscribe func.
func (s *subscribers) add(t EventType, fn func(Event)) func() {
	if s.byType[t] == nil {
		s.byType[t] = make(map[int]func(Event))
	}
	id := s.nextID
	s.nextID++
	s.byType[t][id] = fn
	return func() {
		delete(s.byType[t], id)
	}
}

// emit delivers ev synchronously to all subscribers of its type.
func (s *subscribers) emit(ev Event) {
	for _, fn := range s.byType[ev.Type] {
		fn(ev)
	}
}

// clear drops every subscription.
func (s *subscribers) clear() {
	s.byType = make(map[EventType]map[int]func(Event))
}
