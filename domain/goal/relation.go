package goal

import "github.com/felixgeelhaar/stackplan/domain/world"

// placement is where an argument sits for the purpose of a binary relation.
type placement struct {
	column int
	height int
	above  int // objects stacked on top
	placed bool
	floor  bool
}

// locate resolves the two arguments of a binary literal. The floor adopts the
// column of the other argument at height -1.
func locate(s world.State, a, b string) (placement, placement) {
	pa, pb := place(s, a), place(s, b)
	switch {
	case pa.floor && pb.placed:
		pa.column, pa.placed = pb.column, true
	case pb.floor && pa.placed:
		pb.column, pb.placed = pa.column, true
	}
	return pa, pb
}

func place(s world.State, id string) placement {
	if id == world.FloorID {
		return placement{height: -1, floor: true}
	}
	c, h, ok := s.Position(id)
	if !ok {
		return placement{}
	}
	return placement{column: c, height: h, above: len(s.Stacks[c]) - h - 1, placed: true}
}

// Holds reports whether the literal is true in s. Literals with the wrong
// number of arguments never hold.
func Holds(s world.State, l Literal) bool {
	if len(l.Args) != l.Relation.Arity() {
		return false
	}
	if l.Relation == Holding {
		return s.Holding != "" && s.Holding == l.Args[0]
	}

	a, b := locate(s, l.Args[0], l.Args[1])
	if !a.placed || !b.placed {
		return false
	}

	if a.column == b.column {
		switch l.Relation {
		case OnTop, Inside:
			return a.height == b.height+1
		case Above:
			return a.height > b.height
		case Under:
			return a.height < b.height
		}
		return false
	}

	switch l.Relation {
	case Beside:
		return a.column-b.column == 1 || b.column-a.column == 1
	case LeftOf:
		return a.column < b.column
	case RightOf:
		return a.column > b.column
	}
	return false
}
