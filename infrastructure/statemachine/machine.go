// Package statemachine provides the statekit integration for planning attempts.
package statemachine

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/felixgeelhaar/statekit"
)

// Phase is the lifecycle position of one interpretation attempt.
type Phase string

// Attempt phases. Solved, Unreachable, Exhausted and Rejected are terminal.
const (
	PhasePending     Phase = "pending"
	PhaseSearching   Phase = "searching"
	PhaseSolved      Phase = "solved"
	PhaseUnreachable Phase = "unreachable"
	PhaseExhausted   Phase = "exhausted"
	PhaseRejected    Phase = "rejected"
)

// IsTerminal reports whether no further transition leaves the phase.
func (p Phase) IsTerminal() bool {
	switch p {
	case PhaseSolved, PhaseUnreachable, PhaseExhausted, PhaseRejected:
		return true
	default:
		return false
	}
}

// Recorder receives one observation per finished attempt.
type Recorder interface {
	RecordAttempt(outcome string, visited, planLength int, elapsed time.Duration)
}

// Context carries one attempt through the state machine.
type Context struct {
	RequestID      string
	Interpretation string
	Formula        string
	Budget         int

	Phase      Phase
	Visited    int
	PlanLength int
	Err        error

	Started time.Time
	Elapsed time.Duration

	Logger   *bolt.Logger
	Recorder Recorder
}

// NewContext creates a machine context for the named interpretation.
func NewContext(requestID, interpretation string, logger *bolt.Logger, recorder Recorder) *Context {
	return &Context{
		RequestID:      requestID,
		Interpretation: interpretation,
		Logger:         logger,
		Recorder:       recorder,
	}
}

const (
	statePending     = statekit.StateID(PhasePending)
	stateSearching   = statekit.StateID(PhaseSearching)
	stateSolved      = statekit.StateID(PhaseSolved)
	stateUnreachable = statekit.StateID(PhaseUnreachable)
	stateExhausted   = statekit.StateID(PhaseExhausted)
	stateRejected    = statekit.StateID(PhaseRejected)
)

// Event types accepted by the attempt machine.
const (
	EventSearch      statekit.EventType = "SEARCH"
	EventSolve       statekit.EventType = "SOLVE"
	EventUnreachable statekit.EventType = "UNREACHABLE"
	EventExhaust     statekit.EventType = "EXHAUST"
	EventReject      statekit.EventType = "REJECT"
)

// NewAttemptMachine creates the attempt statechart:
//
//	pending -> searching -> solved | unreachable | exhausted
//	pending -> rejected
func NewAttemptMachine() (*statekit.MachineConfig[*Context], error) {
	return statekit.NewMachine[*Context]("attempt").
		WithInitial(statePending).
		WithContext(&Context{}).
		// Register actions
		WithAction("startClock", startClock).
		WithAction("recordReport", recordReport).
		WithAction("logEntry", logPhaseEntry).
		WithAction("finish", finishAttempt).
		// Register guards
		WithGuard("hasReport", guardHasReport).
		WithGuard("hasError", guardHasError).
		// Define states
		State(statePending).
			On(EventSearch).Target(stateSearching).Do("startClock").
			On(EventReject).Target(stateRejected).Guard("hasError").Do("recordReport").
			Done().
		State(stateSearching).
			OnEntry("logEntry").
			On(EventSolve).Target(stateSolved).Guard("hasReport").Do("recordReport").
			On(EventUnreachable).Target(stateUnreachable).Guard("hasError").Do("recordReport").
			On(EventExhaust).Target(stateExhausted).Guard("hasError").Do("recordReport").
			Done().
		State(stateSolved).
			Final().
			OnEntry("finish").
			Done().
		State(stateUnreachable).
			Final().
			OnEntry("finish").
			Done().
		State(stateExhausted).
			Final().
			OnEntry("finish").
			Done().
		State(stateRejected).
			Final().
			OnEntry("finish").
			Done().
		Build()
}

// EventFor returns the event that moves an attempt into the phase.
func EventFor(to Phase) statekit.EventType {
	switch to {
	case PhaseSearching:
		return EventSearch
	case PhaseSolved:
		return EventSolve
	case PhaseUnreachable:
		return EventUnreachable
	case PhaseExhausted:
		return EventExhaust
	case PhaseRejected:
		return EventReject
	default:
		return statekit.EventType(to)
	}
}
