// Package goal compiles goal formulas over spatial relations into a goal test
// and an admissible cost estimate over world states.
package goal

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/stackplan/domain/world"
)

// Relation names a spatial relation between objects.
type Relation string

// Supported relations.
const (
	Holding Relation = "holding"
	OnTop   Relation = "ontop"
	Inside  Relation = "inside"
	Above   Relation = "above"
	Under   Relation = "under"
	Beside  Relation = "beside"
	LeftOf  Relation = "leftof"
	RightOf Relation = "rightof"
)

// IsValid returns true if the relation is supported.
func (r Relation) IsValid() bool {
	switch r {
	case Holding, OnTop, Inside, Above, Under, Beside, LeftOf, RightOf:
		return true
	default:
		return false
	}
}

// Arity returns the number of arguments the relation takes.
func (r Relation) Arity() int {
	if r == Holding {
		return 1
	}
	return 2
}

// acceptsFloor reports whether the floor may be the second argument.
func (r Relation) acceptsFloor() bool {
	return r == OnTop || r == Inside || r == Above
}

// Literal is an atomic relation claim.
type Literal struct {
	Relation Relation `json:"relation" yaml:"relation"`
	Args     []string `json:"args" yaml:"args"`
}

// Lit builds a literal.
func Lit(r Relation, args ...string) Literal {
	return Literal{Relation: r, Args: args}
}

// String renders the literal as rel(a,b).
func (l Literal) String() string {
	return fmt.Sprintf("%s(%s)", l.Relation, strings.Join(l.Args, ","))
}

// Validate checks the relation name, arity and floor placement.
func (l Literal) Validate() error {
	if !l.Relation.IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidFormula, ErrUnknownRelation, l.Relation)
	}
	if len(l.Args) != l.Relation.Arity() {
		return fmt.Errorf("%w: %w: %s takes %d, got %d",
			ErrInvalidFormula, ErrArity, l.Relation, l.Relation.Arity(), len(l.Args))
	}
	for i, arg := range l.Args {
		if arg == "" {
			return fmt.Errorf("%w: %s has an empty argument", ErrInvalidFormula, l)
		}
		if arg == world.FloorID && (i == 0 || !l.Relation.acceptsFloor()) {
			return fmt.Errorf("%w: %s cannot refer to the floor there", ErrInvalidFormula, l)
		}
	}
	return nil
}

// Conjunction is a set of literals that must all hold.
type Conjunction []Literal

// String renders the conjunction joined by " & ".
func (c Conjunction) String() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	return strings.Join(parts, " & ")
}

// Formula is a disjunction of conjunctions.
type Formula []Conjunction

// String renders the formula joined by " | ".
func (f Formula) String() string {
	parts := make([]string, len(f))
	for i, c := range f {
		parts[i] = c.String()
	}
	return strings.Join(parts, " | ")
}

// Validate checks every literal and rejects empty formulas and conjunctions.
func (f Formula) Validate() error {
	if len(f) == 0 {
		return fmt.Errorf("%w: empty formula", ErrInvalidFormula)
	}
	for i, c := range f {
		if len(c) == 0 {
			return fmt.Errorf("%w: conjunction %d is empty", ErrInvalidFormula, i)
		}
		for _, l := range c {
			if err := l.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Objects returns the distinct object identifiers the formula mentions,
// excluding the floor, in first-seen order.
func (f Formula) Objects() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, c := range f {
		for _, l := range c {
			for _, arg := range l.Args {
				if arg == world.FloorID || seen[arg] {
					continue
				}
				seen[arg] = true
				ids = append(ids, arg)
			}
		}
	}
	return ids
}
