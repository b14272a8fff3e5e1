package statespace

import "github.com/felixgeelhaar/stackplan/domain/world"

// Move applies one action to the node, returning the resulting node and
// whether the action is legal. The receiver is never modified.
func (n *Node) Move(a world.Action) (*Node, bool) {
	switch a {
	case world.MoveLeft:
		return n.moveLeft()
	case world.MoveRight:
		return n.moveRight()
	case world.PickUp:
		return n.pickUp()
	case world.PutDown:
		return n.putDown()
	default:
		return nil, false
	}
}

func (n *Node) moveLeft() (*Node, bool) {
	if n.state.Arm == 0 {
		return nil, false
	}
	s := n.state.Clone()
	s.Arm--
	return newNode(s), true
}

func (n *Node) moveRight() (*Node, bool) {
	if n.state.Arm >= len(n.state.Stacks)-1 {
		return nil, false
	}
	s := n.state.Clone()
	s.Arm++
	return newNode(s), true
}

func (n *Node) pickUp() (*Node, bool) {
	if n.state.Holding != "" || len(n.state.Stacks[n.state.Arm]) == 0 {
		return nil, false
	}
	s := n.state.Clone()
	stack := s.Stacks[s.Arm]
	s.Holding = stack[len(stack)-1]
	s.Stacks[s.Arm] = stack[:len(stack)-1]
	return newNode(s), true
}

func (n *Node) putDown() (*Node, bool) {
	if n.state.Holding == "" {
		return nil, false
	}
	held := n.state.Objects[n.state.Holding]
	if !world.CanDrop(held, n.state.Top(n.state.Arm)) {
		return nil, false
	}
	s := n.state.Clone()
	s.Stacks[s.Arm] = append(s.Stacks[s.Arm], s.Holding)
	s.Holding = ""
	return newNode(s), true
}

// Successor pairs a legal action with the node it produces.
type Successor struct {
	Action world.Action
	Node   *Node
}

// Successors returns every legal successor in the order l, r, p, d.
func (n *Node) Successors() []Successor {
	out := make([]Successor, 0, 4)
	for _, a := range world.AllActions() {
		if next, ok := n.Move(a); ok {
			out = append(out, Successor{Action: a, Node: next})
		}
	}
	return out
}
