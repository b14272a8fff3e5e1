package goal

import (
	"fmt"

	"github.com/felixgeelhaar/stackplan/domain/world"
)

// DisplacementCost is the default estimate for clearing one object out of
// the way: pick it up, move, drop it, and move back.
const DisplacementCost = 4

// Goal is a compiled formula with pure evaluation methods.
type Goal struct {
	formula Formula
	cost    int
}

// Option configures a Goal.
type Option func(*Goal)

// WithDisplacementCost overrides the per-displacement constant used by Estimate.
func WithDisplacementCost(k int) Option {
	return func(g *Goal) {
		g.cost = k
	}
}

// Compile validates f and returns the goal it describes.
func Compile(f Formula, opts ...Option) (*Goal, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	g := &Goal{formula: f, cost: DisplacementCost}
	for _, opt := range opts {
		opt(g)
	}
	if g.cost < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCost, g.cost)
	}
	return g, nil
}

// Formula returns the compiled formula.
func (g *Goal) Formula() Formula {
	return g.formula
}

// DisplacementCost returns the per-displacement constant in use.
func (g *Goal) DisplacementCost() int {
	return g.cost
}

// Satisfied reports whether some conjunction has every literal true in s.
func (g *Goal) Satisfied(s world.State) bool {
	for _, c := range g.formula {
		if conjunctionHolds(s, c) {
			return true
		}
	}
	return false
}

func conjunctionHolds(s world.State, c Conjunction) bool {
	for _, l := range c {
		if !Holds(s, l) {
			return false
		}
	}
	return true
}
