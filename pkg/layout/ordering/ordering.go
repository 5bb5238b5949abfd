// Package ordering provides crossing-minimization algorithms that determine
// the left-to-right order of nodes within each rank.
//
// Optimal crossing minimization is NP-hard, so both implementations are
// heuristics: the contract is "best ordering found within the sweep limit",
// not "globally minimal". Both retain the best-seen ordering measured by an
// exact crossing count, so the result is never worse than the initial
// breadth-first ordering.
package ordering

import "github.com/matzehuels/dagviz/pkg/dag"

// Orderer is an interface for horizontal rank ordering algorithms.
// An orderer determines the horizontal sequence of nodes in each rank
// to minimize edge crossings.
type Orderer interface {
	OrderRanks(g *dag.DAG) map[int][]string
}

// DefaultSweeps is the default number of alternating down/up passes used by
// the sweep-based orderers. Part of the configuration contract: identical
// graphs and sweep counts produce identical orderings.
const DefaultSweeps = 8

// initialOrders seeds each rank with a breadth-first ordering from rank 0.
//
// Rank 0 keeps node insertion order. Each subsequent rank is ordered by the
// sequence in which nodes are first reached from the rank above, with any
// unreached nodes appended in insertion order. This gives the sweeps a
// starting point that already follows the graph's broad structure.
func initialOrders(g *dag.DAG) map[int][]string {
	orders := make(map[int][]string, g.RankCount())
	for _, r := range g.RankIDs() {
		orders[r] = dag.NodeIDs(g.NodesInRank(r))
	}

	for _, r := range g.RankIDs() {
		next, exists := orders[r+1]
		if !exists {
			break
		}
		seen := make(map[string]struct{}, len(next))
		bfs := make([]string, 0, len(next))
		for _, id := range orders[r] {
			for _, child := range g.Children(id) {
				if _, ok := seen[child]; !ok {
					seen[child] = struct{}{}
					bfs = append(bfs, child)
				}
			}
		}
		for _, id := range next {
			if _, ok := seen[id]; !ok {
				bfs = append(bfs, id)
			}
		}
		orders[r+1] = bfs
	}
	return orders
}

// cloneOrders deep-copies an orders map so a best-seen snapshot survives
// further sweeps mutating the working copy.
func cloneOrders(orders map[int][]string) map[int][]string {
	out := make(map[int][]string, len(orders))
	for r, ids := range orders {
		cp := make([]string, len(ids))
		copy(cp, ids)
		out[r] = cp
	}
	return out
}
