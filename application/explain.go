package application

import (
	"fmt"

	"github.com/felixgeelhaar/stackplan/domain/statespace"
	"github.com/felixgeelhaar/stackplan/domain/world"
)

// Explain replays labels from w and renders every step as a sentence, e.g.
// "Pick up the large white ball in column 0." w is not modified.
func Explain(w world.State, labels []world.Action) ([]string, error) {
	n := statespace.NewNode(w)
	steps := make([]string, 0, len(labels))
	for i, a := range labels {
		before := n.State()
		next, ok := n.Move(a)
		if !ok {
			return nil, fmt.Errorf("%w: step %d (%q) from %s", statespace.ErrIllegalAction, i, a, n)
		}
		steps = append(steps, describeStep(before, a))
		n = next
	}
	return steps, nil
}

func describeStep(s world.State, a world.Action) string {
	switch a {
	case world.MoveLeft:
		return fmt.Sprintf("Move left to column %d.", s.Arm-1)
	case world.MoveRight:
		return fmt.Sprintf("Move right to column %d.", s.Arm+1)
	case world.PickUp:
		return fmt.Sprintf("Pick up %s in column %d.", world.Describe(s.Top(s.Arm)), s.Arm)
	default:
		held, _ := s.Object(s.Holding)
		return fmt.Sprintf("Put %s down on %s in column %d.", world.Describe(held), world.Describe(s.Top(s.Arm)), s.Arm)
	}
}
