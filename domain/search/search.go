// Package search defines the contract between a domain graph and a
// best-first shortest-path search.
package search

import "context"

// Edge is one outgoing transition of a node.
type Edge[N any] struct {
	// Label names the action that produced To.
	Label string
	// Cost is the non-negative cost of taking the edge.
	Cost int
	// To is the node reached.
	To N
}

// Graph enumerates successors and gives nodes a canonical identity.
// Two nodes with the same identity must be interchangeable.
type Graph[N any] interface {
	// Identity returns the canonical identity of n.
	Identity(n N) string

	// Compare orders two nodes consistently with Identity.
	Compare(a, b N) int

	// Successors returns the outgoing edges of n.
	Successors(n N) []Edge[N]
}

// Outcome tags the result of a search.
type Outcome string

// Search outcomes.
const (
	// Success indicates a goal node was reached.
	Success Outcome = "success"
	// Failure indicates the frontier was exhausted without reaching a goal.
	Failure Outcome = "failure"
	// Timeout indicates the expansion budget ran out.
	Timeout Outcome = "timeout"
)

// Result reports the outcome of one search.
type Result[N any] struct {
	Outcome Outcome
	// Path holds the edges from the start to the goal, in order. Only set on Success.
	Path []Edge[N]
	// Cost is the total path cost. Only set on Success.
	Cost int
	// Visited counts the nodes expanded.
	Visited int
}

// Labels returns the edge labels of the path.
func (r Result[N]) Labels() []string {
	labels := make([]string, len(r.Path))
	for i, e := range r.Path {
		labels[i] = e.Label
	}
	return labels
}

// GoalFunc reports whether n is a goal node.
type GoalFunc[N any] func(n N) bool

// HeuristicFunc estimates the remaining cost from n. It must never
// overestimate for the returned path to be optimal.
type HeuristicFunc[N any] func(n N) int

// Searcher finds a cheapest path from start to a goal node, expanding at
// most budget nodes. The error is reserved for context cancellation.
type Searcher[N any] interface {
	Search(ctx context.Context, g Graph[N], start N, goal GoalFunc[N], h HeuristicFunc[N], budget int) (Result[N], error)
}
