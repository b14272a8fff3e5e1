package statemachine

import (
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/stackplan/infrastructure/logging"
)

// Report is the payload of a terminal event.
type Report struct {
	Visited    int
	PlanLength int
	Err        error
}

// In statekit, actions receive a pointer to the context. Since our context is
// *Context, actions receive **Context.

func startClock(ctx **Context, _ statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	(*ctx).Phase = PhaseSearching
	(*ctx).Started = time.Now()
}

func recordReport(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	r, ok := event.Payload.(Report)
	if !ok {
		return
	}

	c := *ctx
	c.Phase = phaseFromEvent(event.Type)
	c.Visited = r.Visited
	c.PlanLength = r.PlanLength
	c.Err = r.Err
	if !c.Started.IsZero() {
		c.Elapsed = time.Since(c.Started)
	}
}

// logPhaseEntry logs when an attempt starts searching.
func logPhaseEntry(ctx **Context, _ statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Logger == nil {
		return
	}

	c := *ctx
	logging.NewEvent(c.Logger.Debug()).Add(
		logging.RequestID(c.RequestID),
		logging.Interpretation(c.Interpretation),
		logging.Formula(c.Formula),
		logging.Budget(c.Budget),
	).Msg("search started")
}

// finishAttempt logs the terminal phase and hands the observation to the
// recorder.
func finishAttempt(ctx **Context, _ statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}

	c := *ctx
	outcome := string(c.Phase)

	if c.Recorder != nil {
		c.Recorder.RecordAttempt(outcome, c.Visited, c.PlanLength, c.Elapsed)
	}
	if c.Logger == nil {
		return
	}

	e := c.Logger.Info()
	if c.Err != nil {
		e = c.Logger.Warn()
	}
	logging.NewEvent(e).Add(
		logging.RequestID(c.RequestID),
		logging.Interpretation(c.Interpretation),
		logging.Outcome(outcome),
		logging.Visited(c.Visited),
		logging.PlanLength(c.PlanLength),
		logging.Duration(c.Elapsed),
		logging.ErrorField(c.Err),
	).Msg("attempt finished")
}
