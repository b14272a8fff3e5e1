package statespace

import (
	"fmt"

	"github.com/felixgeelhaar/stackplan/domain/world"
)

// Apply replays actions from s and returns the final state. s is not modified.
func Apply(s world.State, actions []world.Action) (world.State, error) {
	n := NewNode(s)
	for i, a := range actions {
		next, ok := n.Move(a)
		if !ok {
			return world.State{}, fmt.Errorf("%w: step %d (%q) from %s", ErrIllegalAction, i, a, n)
		}
		n = next
	}
	return n.State(), nil
}
