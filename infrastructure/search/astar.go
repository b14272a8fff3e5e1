// Package search provides an A* implementation of search.Searcher.
package search

import (
	"container/heap"
	"context"
	"slices"

	"github.com/felixgeelhaar/stackplan/domain/search"
)

// cancelCheckInterval is how many expansions pass between context checks.
const cancelCheckInterval = 1024

// AStar is a best-first searcher ordered by f = g + h. With an admissible
// heuristic the first goal node popped lies on a cheapest path.
type AStar[N any] struct{}

// New creates an A* searcher.
func New[N any]() *AStar[N] {
	return &AStar[N]{}
}

// Search expands at most budget nodes; a budget <= 0 is unlimited. Each
// identity is expanded at most once.
func (*AStar[N]) Search(
	ctx context.Context,
	g search.Graph[N],
	start N,
	goal search.GoalFunc[N],
	h search.HeuristicFunc[N],
	budget int,
) (search.Result[N], error) {
	open := &frontier[N]{compare: g.Compare}
	best := map[string]int{g.Identity(start): 0}
	closed := make(map[string]bool)

	heap.Push(open, &entry[N]{node: start, id: g.Identity(start), f: h(start)})

	visited := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*entry[N])
		if closed[cur.id] || cur.g > best[cur.id] {
			continue
		}

		if goal(cur.node) {
			return search.Result[N]{
				Outcome: search.Success,
				Path:    cur.path(),
				Cost:    cur.g,
				Visited: visited,
			}, nil
		}

		if budget > 0 && visited >= budget {
			return search.Result[N]{Outcome: search.Timeout, Visited: visited}, nil
		}
		if visited%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return search.Result[N]{Visited: visited}, err
			}
		}

		closed[cur.id] = true
		visited++

		for _, e := range g.Successors(cur.node) {
			id := g.Identity(e.To)
			if closed[id] {
				continue
			}
			cost := cur.g + e.Cost
			if known, ok := best[id]; ok && known <= cost {
				continue
			}
			best[id] = cost
			heap.Push(open, &entry[N]{
				node:   e.To,
				id:     id,
				g:      cost,
				f:      cost + h(e.To),
				parent: cur,
				edge:   e,
			})
		}
	}

	return search.Result[N]{Outcome: search.Failure, Visited: visited}, nil
}

var _ search.Searcher[int] = (*AStar[int])(nil)

type entry[N any] struct {
	node   N
	id     string
	g, f   int
	parent *entry[N]
	edge   search.Edge[N]
}

func (e *entry[N]) path() []search.Edge[N] {
	var edges []search.Edge[N]
	for cur := e; cur.parent != nil; cur = cur.parent {
		edges = append(edges, cur.edge)
	}
	slices.Reverse(edges)
	return edges
}

// frontier is a min-heap on f, preferring deeper nodes and then the graph
// order so that ties resolve deterministically.
type frontier[N any] struct {
	items   []*entry[N]
	compare func(a, b N) int
}

func (q *frontier[N]) Len() int { return len(q.items) }

func (q *frontier[N]) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g > b.g
	}
	return q.compare(a.node, b.node) < 0
}

func (q *frontier[N]) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *frontier[N]) Push(x any) { q.items = append(q.items, x.(*entry[N])) }

func (q *frontier[N]) Pop() any {
	old := q.items
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return it
}
