package fsm

// Condition is a pure predicate deciding whether a transition may proceed.
// A nil Condition means the transition is always permitted when requested
// explicitly, but is never considered for automatic evaluation.
type Condition func(ctx Context) bool

// Action is a side effect run during a transition, after it is approved and
// before the outgoing state exits. A failing action aborts the transition.
type Action func(ctx Context) error

// Transition is a permitted move between two registered states.
type Transition struct {
	From string
	To   string

	// Condition gates the transition. See the type docs for nil semantics.
	Condition Condition

	// Action runs once per taken transition, before exit/enter.
	Action Action

	// Priority orders evaluation among transitions sharing a source state;
	// higher first, ties keep insertion order.
	Priority int
}

// permitted evaluates the guard against ctx. Nil conditions pass.
func (t Transition) permitted(ctx Context) bool {
	if t.Condition == nil {
		return true
	}
	return t.Condition(ctx)
}

// automatic reports whether this transition participates in the once-per-tick
// automatic evaluation done by Manager.Update.
func (t Transition) automatic() bool {
	return t.Condition != nil
}

// insertByPriority adds tr to list keeping descending priority order.
// The insertion point is after all entries with priority >= tr.Priority,
// which makes the sort stable for equal priorities.
func insertByPriority(list []Transition, tr Transition) []Transition {
	at := len(list)
	for i, existing := range list {
		if existing.Priority < tr.Priority {
			at = i
			break
		}
	}
	list = append(list, Transition{})
	copy(list[at+1:], list[at:])
	list[at] = tr
	return list
}
