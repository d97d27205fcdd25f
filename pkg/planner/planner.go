// Package planner routes the Agent over cells it has already inferred to
// be safe. It is the "external collaborator" spec.md leaves as an
// interface; this package supplies a concrete A* implementation so the
// rest of the repo is actually runnable.
package planner

import (
	"container/heap"

	"github.com/LucaSforza/Wumpus-World/pkg/wumpus"
)

// Plan searches for a shortest path from start to goal using only cells
// in traversable (plus start and goal themselves), via A* with the
// Manhattan-distance heuristic. It returns the path including both
// endpoints, and false if no such path exists.
func Plan(start, goal wumpus.Position, traversable map[wumpus.Position]struct{}) ([]wumpus.Position, bool) {
	if start == goal {
		return []wumpus.Position{start}, true
	}

	open := &priorityQueue{}
	heap.Init(open)
	heap.Push(open, &node{pos: start, g: 0, f: start.Manhattan(goal)})

	cameFrom := map[wumpus.Position]wumpus.Position{}
	bestG := map[wumpus.Position]int{start: 0}
	visited := map[wumpus.Position]bool{}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if visited[cur.pos] {
			continue
		}
		visited[cur.pos] = true

		if cur.pos == goal {
			return reconstruct(cameFrom, start, goal), true
		}

		for _, next := range adjacent(cur.pos, traversable, goal) {
			tentativeG := cur.g + 1
			if g, ok := bestG[next]; ok && tentativeG >= g {
				continue
			}
			bestG[next] = tentativeG
			cameFrom[next] = cur.pos
			heap.Push(open, &node{pos: next, g: tentativeG, f: tentativeG + next.Manhattan(goal)})
		}
	}

	return nil, false
}

// adjacent returns the 4-connected neighbors of pos that are either the
// goal itself or members of traversable — the Agent's graph is "every
// cell known to be safe plus the one destination cell".
func adjacent(pos wumpus.Position, traversable map[wumpus.Position]struct{}, goal wumpus.Position) []wumpus.Position {
	candidates := []wumpus.Position{
		{X: pos.X, Y: pos.Y - 1},
		{X: pos.X, Y: pos.Y + 1},
		{X: pos.X + 1, Y: pos.Y},
		{X: pos.X - 1, Y: pos.Y},
	}
	out := make([]wumpus.Position, 0, 4)
	for _, c := range candidates {
		if c == goal {
			out = append(out, c)
			continue
		}
		if _, ok := traversable[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func reconstruct(cameFrom map[wumpus.Position]wumpus.Position, start, goal wumpus.Position) []wumpus.Position {
	path := []wumpus.Position{goal}
	for cur := goal; cur != start; {
		prev := cameFrom[cur]
		path = append(path, prev)
		cur = prev
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// NearestUnvisited runs Plan from start to every candidate in targets and
// returns the shortest resulting path, or false if none of the targets is
// reachable. Ties are broken in iteration order of targets.
func NearestUnvisited(start wumpus.Position, targets []wumpus.Position, traversable map[wumpus.Position]struct{}) ([]wumpus.Position, bool) {
	var best []wumpus.Position
	for _, target := range targets {
		path, ok := Plan(start, target, traversable)
		if !ok {
			continue
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	return best, best != nil
}

type node struct {
	pos  wumpus.Position
	g, f int
}

type priorityQueue []*node

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].f < pq[j].f }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(*node)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
