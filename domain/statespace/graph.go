package statespace

import (
	"strings"

	"github.com/felixgeelhaar/stackplan/domain/search"
)

// Graph adapts the move generator to search.Graph. Every edge costs 1.
type Graph struct{}

// Identity returns the canonical identity of n.
func (Graph) Identity(n *Node) string {
	return n.identity
}

// Compare orders nodes lexicographically by identity.
func (Graph) Compare(a, b *Node) int {
	return strings.Compare(a.identity, b.identity)
}

// Successors returns the legal moves out of n as unit-cost edges.
func (Graph) Successors(n *Node) []search.Edge[*Node] {
	succ := n.Successors()
	edges := make([]search.Edge[*Node], len(succ))
	for i, s := range succ {
		edges[i] = search.Edge[*Node]{Label: s.Action.String(), Cost: 1, To: s.Node}
	}
	return edges
}

var _ search.Graph[*Node] = Graph{}
