package layout

import (
	"github.com/matzehuels/dagviz/pkg/dag"
)

// assignCoordinates computes a center position for every node (virtual
// nodes included) from the final rank orders. Positions are computed in
// an abstract breadth/depth space and then mapped onto x/y according to
// the configured rank direction.
//
// Within a rank, nodes are placed side by side separated by NodeSpacing
// and the whole rank is centered against the widest rank. Ranks are
// stacked along the depth axis separated by RankSpacing, each rank as
// deep as its deepest node.
func assignCoordinates(g *dag.DAG, orders map[int][]string, cfg Config) (width, height float64) {
	if g.NodeCount() == 0 {
		return 0, 0
	}

	horizontal := cfg.horizontal()

	// breadth is the extent perpendicular to rank stacking, depth the
	// extent along it. For LR/RL the axes swap.
	breadthOf := func(n *dag.Node) float64 {
		if horizontal {
			return n.H
		}
		return n.W
	}
	depthOf := func(n *dag.Node) float64 {
		if horizontal {
			return n.W
		}
		return n.H
	}

	rankIDs := g.RankIDs()

	// Measure every rank: total breadth and maximum depth.
	rankBreadth := make(map[int]float64, len(rankIDs))
	rankDepth := make(map[int]float64, len(rankIDs))
	maxBreadth := 0.0
	totalDepth := 0.0
	for i, r := range rankIDs {
		ids := orders[r]
		total := 0.0
		deepest := 0.0
		for j, id := range ids {
			n, _ := g.Node(id)
			if j > 0 {
				total += cfg.NodeSpacing
			}
			total += breadthOf(n)
			if d := depthOf(n); d > deepest {
				deepest = d
			}
		}
		rankBreadth[r] = total
		rankDepth[r] = deepest
		if total > maxBreadth {
			maxBreadth = total
		}
		if i > 0 {
			totalDepth += cfg.RankSpacing
		}
		totalDepth += deepest
	}

	flip := cfg.RankDir == RankDirBT || cfg.RankDir == RankDirRL

	// Place ranks along the depth axis and nodes along the breadth axis.
	// All positions are centers, margin included.
	depth := cfg.Margin
	for i, r := range rankIDs {
		if i > 0 {
			depth += cfg.RankSpacing
		}
		rankCenter := depth + rankDepth[r]/2
		if flip {
			rankCenter = cfg.Margin + totalDepth - (rankCenter - cfg.Margin)
		}

		breadth := cfg.Margin + (maxBreadth-rankBreadth[r])/2
		for j, id := range orders[r] {
			n, _ := g.Node(id)
			if j > 0 {
				breadth += cfg.NodeSpacing
			}
			center := breadth + breadthOf(n)/2
			if horizontal {
				n.X, n.Y = rankCenter, center
			} else {
				n.X, n.Y = center, rankCenter
			}
			breadth += breadthOf(n)
		}

		depth += rankDepth[r]
	}

	canvasBreadth := maxBreadth + 2*cfg.Margin
	canvasDepth := totalDepth + 2*cfg.Margin
	if horizontal {
		return canvasDepth, canvasBreadth
	}
	return canvasBreadth, canvasDepth
}
