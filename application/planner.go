// Package application provides the planning driver: it runs one search per
// goal interpretation and collects the plans that were found.
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/felixgeelhaar/stackplan/domain/goal"
	"github.com/felixgeelhaar/stackplan/domain/search"
	"github.com/felixgeelhaar/stackplan/domain/statespace"
	"github.com/felixgeelhaar/stackplan/domain/world"
	"github.com/felixgeelhaar/stackplan/infrastructure/logging"
	astar "github.com/felixgeelhaar/stackplan/infrastructure/search"
	"github.com/felixgeelhaar/stackplan/infrastructure/statemachine"
	"github.com/felixgeelhaar/stackplan/infrastructure/telemetry"
)

// DefaultBudget is the expansion budget used when none is configured.
const DefaultBudget = 100000

// AlreadySatisfied is the plan reported when the goal holds in the initial world.
const AlreadySatisfied = "The goal is already satisfied."

// Interpretation is one candidate reading of a user instruction.
type Interpretation struct {
	// Name identifies the interpretation in logs and errors.
	Name string
	// Formula is the goal to reach.
	Formula goal.Formula
	// Meta is carried through to the solution untouched.
	Meta any
}

// Solution is a plan found for one interpretation.
type Solution struct {
	Interpretation Interpretation
	// Labels is the action sequence. It is empty when the goal already holds.
	Labels []world.Action
	// Plan holds the labels as strings, or AlreadySatisfied.
	Plan []string
	// Cost is the number of actions.
	Cost int
	// Visited counts the states the search expanded.
	Visited int
}

// Planner turns goal interpretations into action plans.
type Planner struct {
	searcher         search.Searcher[*statespace.Node]
	budget           int
	displacementCost int
	logger           *bolt.Logger
	metrics          telemetry.Metrics
	tracer           trace.Tracer
	newID            func() string
}

// PlannerConfig contains configuration for the planner.
type PlannerConfig struct {
	Searcher         search.Searcher[*statespace.Node]
	Budget           int
	DisplacementCost int
	Logger           *bolt.Logger
	Metrics          telemetry.Metrics
	Tracer           trace.Tracer
	NewID            func() string
}

// NewPlanner creates a planner. Unset options fall back to an A* searcher,
// DefaultBudget, goal.DisplacementCost, a discarding logger and no-op telemetry.
func NewPlanner(opts ...Option) (*Planner, error) {
	config := PlannerConfig{
		Budget:           DefaultBudget,
		DisplacementCost: goal.DisplacementCost,
	}
	for _, opt := range opts {
		opt(&config)
	}

	if config.Budget < 0 {
		return nil, fmt.Errorf("budget must not be negative: got %d", config.Budget)
	}
	if config.DisplacementCost < 1 {
		return nil, fmt.Errorf("%w: got %d", goal.ErrInvalidCost, config.DisplacementCost)
	}

	p := &Planner{
		searcher:         config.Searcher,
		budget:           config.Budget,
		displacementCost: config.DisplacementCost,
		logger:           config.Logger,
		metrics:          config.Metrics,
		tracer:           config.Tracer,
		newID:            config.NewID,
	}

	// Set defaults
	if p.searcher == nil {
		p.searcher = astar.New[*statespace.Node]()
	}
	if p.logger == nil {
		p.logger = logging.Discard()
	}
	if p.metrics == nil {
		p.metrics = telemetry.NoopMetricsProvider{}
	}
	if p.tracer == nil {
		p.tracer = noop.NewTracerProvider().Tracer("stackplan")
	}
	if p.newID == nil {
		p.newID = uuid.NewString
	}

	return p, nil
}

// Budget returns the configured expansion budget.
func (p *Planner) Budget() int {
	return p.budget
}

// Plan searches for a plan for every interpretation, in order. It returns the
// solutions found, or an *AggregateError holding every attempt failure when
// there are none. w is never modified.
func (p *Planner) Plan(ctx context.Context, w world.State, interps []Interpretation) ([]Solution, error) {
	if len(interps) == 0 {
		return nil, ErrNoInterpretations
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	requestID := p.newID()
	start := time.Now()

	ctx, span := p.tracer.Start(ctx, "plan", trace.WithAttributes(
		attribute.String("request.id", requestID),
		attribute.Int("interpretations", len(interps)),
		attribute.Int("budget", p.budget),
	))
	defer span.End()

	var (
		solutions []Solution
		failures  []error
	)
	for i, in := range interps {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, err
		}
		if in.Name == "" {
			in.Name = fmt.Sprintf("#%d", i+1)
		}

		sol, err := p.attempt(ctx, requestID, w, in)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				span.RecordError(ctxErr)
				return nil, ctxErr
			}
			failures = append(failures, err)
			continue
		}
		solutions = append(solutions, sol)
	}

	elapsed := time.Since(start)
	p.metrics.RecordPlan(ctx, len(solutions), elapsed)
	span.SetAttributes(attribute.Int("solutions", len(solutions)))

	logging.NewEvent(p.logger.Info()).Add(
		logging.RequestID(requestID),
		logging.Int("solutions", len(solutions)),
		logging.Int("failures", len(failures)),
		logging.Duration(elapsed),
	).Msg("plan finished")

	if len(solutions) > 0 {
		return solutions, nil
	}

	agg := &AggregateError{Errors: failures}
	span.RecordError(agg)
	span.SetStatus(codes.Error, "no interpretation could be planned")
	return nil, agg
}

// attempt runs one interpretation through the attempt state machine.
func (p *Planner) attempt(ctx context.Context, requestID string, w world.State, in Interpretation) (Solution, error) {
	machine, err := statemachine.NewAttemptMachine()
	if err != nil {
		return Solution{}, fmt.Errorf("build attempt machine: %w", err)
	}

	mctx := statemachine.NewContext(requestID, in.Name, p.logger, p.metrics)
	mctx.Formula = in.Formula.String()
	mctx.Budget = p.budget

	interp := statemachine.NewInterpreter(machine, mctx)
	interp.Start()
	defer interp.Stop()

	g, err := p.compile(w, in.Formula)
	if err != nil {
		aerr := &AttemptError{Interpretation: in.Name, Err: err}
		if ferr := interp.Finish(statemachine.PhaseRejected, statemachine.Report{Err: aerr}); ferr != nil {
			return Solution{}, ferr
		}
		return Solution{}, aerr
	}

	if err := interp.Search(); err != nil {
		return Solution{}, err
	}

	ctx, span := p.tracer.Start(ctx, "attempt", trace.WithAttributes(
		attribute.String("interpretation", in.Name),
		attribute.String("formula", mctx.Formula),
	))
	defer span.End()

	res, err := p.searcher.Search(
		ctx,
		statespace.Graph{},
		statespace.NewNode(w),
		func(n *statespace.Node) bool { return statespace.Eval(n, g.Satisfied) },
		func(n *statespace.Node) int { return statespace.Eval(n, g.Estimate) },
		p.budget,
	)
	span.SetAttributes(attribute.Int("visited", res.Visited))
	if err != nil {
		span.RecordError(err)
		return Solution{}, err
	}
	span.SetAttributes(attribute.String("outcome", string(res.Outcome)))

	switch res.Outcome {
	case search.Success:
		sol := newSolution(in, res)
		if ferr := interp.Finish(statemachine.PhaseSolved, statemachine.Report{
			Visited:    res.Visited,
			PlanLength: len(sol.Labels),
		}); ferr != nil {
			return Solution{}, ferr
		}
		return sol, nil

	case search.Timeout:
		aerr := &AttemptError{
			Interpretation: in.Name,
			Visited:        res.Visited,
			Err:            fmt.Errorf("%w after visiting %d states", ErrBudgetExceeded, res.Visited),
		}
		if ferr := interp.Finish(statemachine.PhaseExhausted, statemachine.Report{Visited: res.Visited, Err: aerr}); ferr != nil {
			return Solution{}, ferr
		}
		return Solution{}, aerr

	default:
		aerr := &AttemptError{
			Interpretation: in.Name,
			Visited:        res.Visited,
			Err:            fmt.Errorf("%w: no plan after visiting %d states", ErrUnreachable, res.Visited),
		}
		if ferr := interp.Finish(statemachine.PhaseUnreachable, statemachine.Report{Visited: res.Visited, Err: aerr}); ferr != nil {
			return Solution{}, ferr
		}
		return Solution{}, aerr
	}
}

// compile validates the formula against w and compiles it.
func (p *Planner) compile(w world.State, f goal.Formula) (*goal.Goal, error) {
	g, err := goal.Compile(f, goal.WithDisplacementCost(p.displacementCost))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGoal, err)
	}
	for _, id := range f.Objects() {
		if _, ok := w.Objects[id]; !ok {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidGoal, world.ErrUnknownObject, id)
		}
	}
	return g, nil
}

func newSolution(in Interpretation, res search.Result[*statespace.Node]) Solution {
	labels := make([]world.Action, len(res.Path))
	plan := make([]string, len(res.Path))
	for i, e := range res.Path {
		labels[i] = world.Action(e.Label)
		plan[i] = e.Label
	}
	if len(plan) == 0 {
		plan = []string{AlreadySatisfied}
	}
	return Solution{
		Interpretation: in,
		Labels:         labels,
		Plan:           plan,
		Cost:           res.Cost,
		Visited:        res.Visited,
	}
}
