package transform

import "github.com/matzehuels/dagviz/pkg/dag"

// AssignRanks assigns nodes to ranks (layers) based on their depth in the
// graph's effective edge direction.
//
// AssignRanks uses a longest-path algorithm via topological sort (Kahn's
// algorithm). Each node is placed at one plus the maximum rank of any of its
// parents, ensuring that:
//   - Source nodes (effective in-degree 0) are at rank 0
//   - rank(target) == rank(source) + longest-path distance for every node
//   - rank(target) > rank(source) for every effective edge
//
// Disconnected components are ranked independently, each with its own roots
// at rank 0. Isolated nodes stay at rank 0. Existing rank assignments are
// overwritten.
//
// # Cycles
//
// AssignRanks assumes the effective direction is acyclic. If cycles exist,
// nodes in the cycle never reach zero in-degree and remain at rank 0. Run
// [BreakCycles] first to ensure correct ranking.
//
// # Determinism
//
// The queue is seeded with sources in insertion order and children are
// visited in adjacency (edge insertion) order, so ranks are deterministic
// given identical input order.
//
// # Performance
//
// Time complexity is O(V + E); space complexity is O(V) for the queue and
// rank/degree maps.
func AssignRanks(g *dag.DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	ranks := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if rank := ranks[curr] + 1; rank > ranks[child] {
				ranks[child] = rank
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRanks(ranks)
}
