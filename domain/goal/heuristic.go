package goal

import "github.com/felixgeelhaar/stackplan/domain/world"

// Estimate returns a lower bound on the number of actions needed to reach a
// state that satisfies the goal. A disjunction costs its cheapest
// conjunction; a conjunction costs its most expensive literal.
func (g *Goal) Estimate(s world.State) int {
	best := -1
	for _, c := range g.formula {
		worst := 0
		for _, l := range c {
			worst = max(worst, literalCost(s, l, g.cost))
		}
		if best < 0 || worst < best {
			best = worst
		}
	}
	return max(best, 0)
}

// literalCost counts the objects that must be cleared away before l can hold,
// each weighted by k.
func literalCost(s world.State, l Literal, k int) int {
	if Holds(s, l) {
		return 0
	}
	if l.Relation == Holding {
		return k * s.Above(l.Args[0])
	}
	if len(l.Args) != 2 {
		return 0
	}

	a, b := locate(s, l.Args[0], l.Args[1])
	switch {
	case b.floor:
		return k * a.above
	case a.placed && b.placed && a.column == b.column:
		return k * min(a.above, b.above)
	}

	// Distinct columns, or one of the objects is in the arm.
	switch l.Relation {
	case OnTop, Inside:
		return k * (a.above + b.above)
	case Above:
		return k * a.above
	case Under:
		return k * b.above
	default:
		return k * min(a.above, b.above)
	}
}
