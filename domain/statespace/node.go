// Package statespace models world snapshots as search nodes and generates
// the legal arm moves between them.
package statespace

import (
	"strconv"
	"strings"

	"github.com/felixgeelhaar/stackplan/domain/world"
)

// Node is an immutable snapshot of one world state.
type Node struct {
	state    world.State
	identity string
}

// NewNode wraps a deep copy of s.
func NewNode(s world.State) *Node {
	return newNode(s.Clone())
}

// newNode takes ownership of s, which must not be shared.
func newNode(s world.State) *Node {
	return &Node{
		state:    s,
		identity: Identity(s.Arm, s.Holding, s.Stacks),
	}
}

// State returns a deep copy of the wrapped state.
func (n *Node) State() world.State {
	return n.state.Clone()
}

// Eval applies f to the wrapped state without copying it. f must treat the
// state as read-only and must not retain it.
func Eval[T any](n *Node, f func(world.State) T) T {
	return f(n.state)
}

// Identity returns the canonical identity of the node.
func (n *Node) Identity() string {
	return n.identity
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return n.identity
}

// Identity encodes (arm, holding, stacks) canonically. Identifiers are
// length-prefixed so that no two distinct tuples share an encoding, e.g.
//
//	0|-|[1:e][1:g1:l][]
//	2|1:f|[][1:k]
//
// An empty hand encodes as "-".
func Identity(arm int, holding string, stacks [][]string) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(arm))
	b.WriteByte('|')
	if holding == "" {
		b.WriteByte('-')
	} else {
		writeID(&b, holding)
	}
	b.WriteByte('|')
	for _, stack := range stacks {
		b.WriteByte('[')
		for _, id := range stack {
			writeID(&b, id)
		}
		b.WriteByte(']')
	}
	return b.String()
}

func writeID(b *strings.Builder, id string) {
	b.WriteString(strconv.Itoa(len(id)))
	b.WriteByte(':')
	b.WriteString(id)
}
