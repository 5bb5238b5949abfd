package ordering

import (
	"slices"

	"github.com/matzehuels/dagviz/pkg/dag"
)

// Median orders ranks with the iterative median heuristic.
//
// Starting from a breadth-first initial ordering, Median runs up to Sweeps
// alternating passes: downward passes reposition each node at the median of
// its parents' positions in the rank above, upward passes at the median of
// its children's positions in the rank below. After every pass the exact
// crossing count is measured; the best-seen ordering is retained and the
// loop stops early once a pass fails to improve it.
//
// # Tie-break policy
//
// Nodes with no neighbors in the reference rank keep their current position,
// and nodes with equal medians retain their previous relative order (stable
// sort). For an even neighbor count the median is the mean of the two middle
// positions. This policy is part of the configuration contract: it makes the
// result on ambiguous graphs (e.g. symmetric diamonds) deterministic.
type Median struct {
	// Sweeps is the maximum number of directional passes. Zero or negative
	// values fall back to DefaultSweeps.
	Sweeps int
}

// OrderRanks implements [Orderer].
func (m Median) OrderRanks(g *dag.DAG) map[int][]string {
	sweeps := m.Sweeps
	if sweeps <= 0 {
		sweeps = DefaultSweeps
	}

	orders := initialOrders(g)
	best := cloneOrders(orders)
	bestCrossings := dag.CountCrossings(g, best)

	ranks := g.RankIDs()
	improvedThisRound := false
	for i := 0; i < sweeps && bestCrossings > 0; i++ {
		if i%2 == 0 {
			sweepDown(g, orders, ranks)
		} else {
			sweepUp(g, orders, ranks)
		}

		if crossings := dag.CountCrossings(g, orders); crossings < bestCrossings {
			bestCrossings = crossings
			best = cloneOrders(orders)
			improvedThisRound = true
		}

		// A full round is one downward plus one upward pass; stop early
		// once a whole round fails to improve the best-seen ordering.
		if i%2 == 1 {
			if !improvedThisRound {
				break
			}
			improvedThisRound = false
		}
	}

	return best
}

// sweepDown reorders ranks 1..max by parent medians, top to bottom.
// Each rank uses the rank above as already repositioned in this sweep.
func sweepDown(g *dag.DAG, orders map[int][]string, ranks []int) {
	for i := 1; i < len(ranks); i++ {
		reorderByMedian(g, orders, ranks[i], ranks[i-1], true)
	}
}

// sweepUp reorders ranks max-1..0 by child medians, bottom to top.
func sweepUp(g *dag.DAG, orders map[int][]string, ranks []int) {
	for i := len(ranks) - 2; i >= 0; i-- {
		reorderByMedian(g, orders, ranks[i], ranks[i+1], false)
	}
}

// reorderByMedian repositions the nodes of rank at the median position of
// their neighbors in the adjacent reference rank, stable-sorted.
func reorderByMedian(g *dag.DAG, orders map[int][]string, rank, adjacent int, useParents bool) {
	ids := orders[rank]
	if len(ids) < 2 {
		return
	}
	adjPos := dag.PosMap(orders[adjacent])

	type keyed struct {
		id     string
		weight float64
	}
	row := make([]keyed, len(ids))
	for i, id := range ids {
		var neighbors []string
		if useParents {
			neighbors = g.Parents(id)
		} else {
			neighbors = g.Children(id)
		}
		row[i] = keyed{id: id, weight: medianOf(neighbors, adjPos, float64(i))}
	}

	slices.SortStableFunc(row, func(a, b keyed) int {
		switch {
		case a.weight < b.weight:
			return -1
		case a.weight > b.weight:
			return 1
		default:
			return 0
		}
	})

	for i, k := range row {
		ids[i] = k.id
	}
}

// medianOf returns the median position of neighbors inside the adjacent
// rank, or fallback when the node has no neighbors there. For an even count
// it returns the mean of the two middle positions.
func medianOf(neighbors []string, adjPos map[string]int, fallback float64) float64 {
	positions := make([]int, 0, len(neighbors))
	for _, id := range neighbors {
		if p, ok := adjPos[id]; ok {
			positions = append(positions, p)
		}
	}
	if len(positions) == 0 {
		return fallback
	}
	slices.Sort(positions)

	mid := len(positions) / 2
	if len(positions)%2 == 1 {
		return float64(positions[mid])
	}
	return float64(positions[mid-1]+positions[mid]) / 2
}
