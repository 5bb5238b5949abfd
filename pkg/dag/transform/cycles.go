package transform

import "github.com/matzehuels/dagviz/pkg/dag"

// BreakCycles makes the effective edge direction of g acyclic by flipping
// back edges found during depth-first traversal. Flipped edges keep their
// caller-declared direction recoverable via the Reversed flag; no edge is
// ever removed. Returns the number of edges flipped.
//
// Traversal starts from source nodes first, then from any remaining
// unvisited node, in insertion order both times. This makes the flipped set
// deterministic given identical input order.
//
// Self-loop edges never participate in traversal (they are excluded from the
// adjacency indices) and are left untouched for the edge router.
//
// BreakCycles always succeeds: any digraph reduces to a DAG by flipping the
// back edges of a DFS forest.
func BreakCycles(g *dag.DAG) int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var backEdges []*dag.Edge

	// Back edges are looked up by endpoint pair; among duplicate edges each
	// adjacency entry maps to a distinct edge, taken in insertion order.
	byPair := make(map[[2]string][]*dag.Edge)
	for _, e := range g.Edges() {
		if !e.IsSelfLoop() {
			key := [2]string{e.From, e.To}
			byPair[key] = append(byPair[key], e)
		}
	}
	edgeBetween := func(from, to string) *dag.Edge {
		key := [2]string{from, to}
		pending := byPair[key]
		if len(pending) == 0 {
			return nil
		}
		e := pending[0]
		byPair[key] = pending[1:]
		return e
	}

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				if e := edgeBetween(node, child); e != nil {
					backEdges = append(backEdges, e)
				}
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, e := range backEdges {
		g.Reverse(e)
	}
	return len(backEdges)
}
