package statemachine

import (
	"slices"

	"github.com/felixgeelhaar/statekit"
)

// allowed lists the phases reachable from each non-terminal phase.
var allowed = map[Phase][]Phase{
	PhasePending:   {PhaseSearching, PhaseRejected},
	PhaseSearching: {PhaseSolved, PhaseUnreachable, PhaseExhausted},
}

// canTransition mirrors the machine's transitions and guards so that only
// events the machine will accept are sent.
func canTransition(from, to Phase, payload any) bool {
	if !slices.Contains(allowed[from], to) {
		return false
	}
	switch to {
	case PhaseSearching:
		return true
	case PhaseSolved:
		_, ok := payload.(Report)
		return ok
	default:
		r, ok := payload.(Report)
		return ok && r.Err != nil
	}
}

// In statekit, guards receive the context by value. Since our context is
// *Context, the guard receives *Context directly.

// guardHasReport requires a Report payload.
func guardHasReport(_ *Context, event statekit.Event) bool {
	_, ok := event.Payload.(Report)
	return ok
}

// guardHasError requires a Report payload carrying the failure cause.
func guardHasError(_ *Context, event statekit.Event) bool {
	r, ok := event.Payload.(Report)
	return ok && r.Err != nil
}

// phaseFromEvent derives the target phase from an event type.
func phaseFromEvent(eventType statekit.EventType) Phase {
	switch eventType {
	case EventSearch:
		return PhaseSearching
	case EventSolve:
		return PhaseSolved
	case EventUnreachable:
		return PhaseUnreachable
	case EventExhaust:
		return PhaseExhausted
	case EventReject:
		return PhaseRejected
	default:
		return Phase(eventType)
	}
}
