package goal

import "errors"

// Domain errors for goal formulas.
var (
	// ErrInvalidFormula indicates a formula that cannot be compiled or parsed.
	ErrInvalidFormula = errors.New("invalid goal formula")

	// ErrUnknownRelation indicates a literal names a relation that is not supported.
	ErrUnknownRelation = errors.New("unknown relation")

	// ErrArity indicates a literal has the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")
)

// ErrInvalidCost indicates a displacement cost below one.
var ErrInvalidCost = errors.New("displacement cost must be at least 1")
