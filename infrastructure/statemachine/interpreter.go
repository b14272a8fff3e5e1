package statemachine

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Interpreter wraps the statekit interpreter for one attempt.
type Interpreter struct {
	interp *statekit.Interpreter[*Context]
	ctx    *Context
}

// NewInterpreter creates a new interpreter for the attempt machine.
func NewInterpreter(machine *statekit.MachineConfig[*Context], ctx *Context) *Interpreter {
	interp := statekit.NewInterpreter(machine)
	interp.UpdateContext(func(c **Context) {
		*c = ctx
	})
	return &Interpreter{
		interp: interp,
		ctx:    ctx,
	}
}

// Start enters the pending phase.
func (i *Interpreter) Start() {
	i.interp.Start()
}

// Stop stops the interpreter.
func (i *Interpreter) Stop() {
	i.interp.Stop()
}

// Phase returns the current phase.
func (i *Interpreter) Phase() Phase {
	return Phase(i.interp.State().Value)
}

// Search moves a pending attempt into the searching phase.
func (i *Interpreter) Search() error {
	return i.transition(PhaseSearching, nil)
}

// Finish moves the attempt into a terminal phase with its report.
func (i *Interpreter) Finish(to Phase, r Report) error {
	if !to.IsTerminal() {
		return fmt.Errorf("%s is not a terminal phase", to)
	}
	return i.transition(to, r)
}

func (i *Interpreter) transition(to Phase, payload any) error {
	from := i.Phase()
	if !canTransition(from, to, payload) {
		return fmt.Errorf("transition from %s to %s not allowed", from, to)
	}
	i.interp.Send(statekit.Event{
		Type:    EventFor(to),
		Payload: payload,
	})
	if !i.interp.Matches(statekit.StateID(to)) {
		return fmt.Errorf("transition from %s to %s did not take effect", from, to)
	}
	return nil
}

// IsTerminal returns true if the attempt has finished.
func (i *Interpreter) IsTerminal() bool {
	return i.interp.Done()
}

// Context returns the interpreter context.
func (i *Interpreter) Context() *Context {
	return i.ctx
}
