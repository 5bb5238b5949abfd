package layout

import (
	"math"

	"github.com/matzehuels/dagviz/pkg/dag"
)

// routeEdges produces a polyline for every edge of the laid-out graph.
// Anchors run through the centers of an edge's virtual nodes, with the
// endpoints clipped to the boundary of the source and target rectangles.
// Point lists always run from the original source to the original target,
// so reversed edges have their anchors flipped back before emission.
func routeEdges(g *dag.DAG, cfg Config) []EdgeGeometry {
	edges := make([]EdgeGeometry, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		if e.IsSelfLoop() {
			edges = append(edges, routeSelfLoop(g, e, cfg))
			continue
		}

		src, _ := g.Node(e.From)
		dst, _ := g.Node(e.To)

		anchors := make([]Point, 0, len(e.Chain)+2)
		anchors = append(anchors, Point{X: src.X, Y: src.Y})
		for _, vid := range e.Chain {
			v, _ := g.Node(vid)
			anchors = append(anchors, Point{X: v.X, Y: v.Y})
		}
		anchors = append(anchors, Point{X: dst.X, Y: dst.Y})

		// Pull the endpoints out of the node interiors.
		anchors[0] = clipToBoundary(src, anchors[1])
		anchors[len(anchors)-1] = clipToBoundary(dst, anchors[len(anchors)-2])

		var points []Point
		switch cfg.EdgeStyle {
		case EdgeStyleOrthogonal:
			points = orthogonalize(anchors, cfg.horizontal())
		default:
			// Straight and curved share the same anchor points; curved
			// rendering interpolates a smooth path through them.
			points = anchors
		}

		if e.Reversed {
			reversePoints(points)
		}

		from, to := e.Original()
		edges = append(edges, EdgeGeometry{
			From:     from,
			To:       to,
			Points:   points,
			Reversed: e.Reversed,
		})
	}
	return edges
}

// routeSelfLoop draws a small loop attached to the right side of the node.
func routeSelfLoop(g *dag.DAG, e *dag.Edge, cfg Config) EdgeGeometry {
	n, _ := g.Node(e.From)
	ext := cfg.NodeSpacing / 2
	right := n.X + n.W/2
	return EdgeGeometry{
		From: e.From,
		To:   e.To,
		Points: []Point{
			{X: right, Y: n.Y - n.H/4},
			{X: right + ext, Y: n.Y - n.H/4},
			{X: right + ext, Y: n.Y + n.H/4},
			{X: right, Y: n.Y + n.H/4},
		},
		SelfLoop: true,
	}
}

// clipToBoundary moves the center of n to the intersection of its
// rectangle boundary with the segment from the center toward target.
func clipToBoundary(n *dag.Node, target Point) Point {
	dx := target.X - n.X
	dy := target.Y - n.Y
	if dx == 0 && dy == 0 {
		return Point{X: n.X, Y: n.Y}
	}

	scale := math.Inf(1)
	if dx != 0 {
		scale = (n.W / 2) / math.Abs(dx)
	}
	if dy != 0 {
		if s := (n.H / 2) / math.Abs(dy); s < scale {
			scale = s
		}
	}
	return Point{X: n.X + dx*scale, Y: n.Y + dy*scale}
}

// orthogonalize rewrites a polyline so every segment is axis aligned,
// inserting an elbow pair halfway between consecutive anchors. For
// vertical layouts edges bend at the midpoint of the rank gap; for
// horizontal layouts the axes swap.
func orthogonalize(anchors []Point, horizontal bool) []Point {
	points := make([]Point, 0, len(anchors)*3)
	points = append(points, anchors[0])
	for i := 1; i < len(anchors); i++ {
		a, b := anchors[i-1], anchors[i]
		if horizontal {
			if a.Y != b.Y {
				mid := (a.X + b.X) / 2
				points = append(points, Point{X: mid, Y: a.Y}, Point{X: mid, Y: b.Y})
			}
		} else {
			if a.X != b.X {
				mid := (a.Y + b.Y) / 2
				points = append(points, Point{X: a.X, Y: mid}, Point{X: b.X, Y: mid})
			}
		}
		points = append(points, b)
	}
	return points
}

func reversePoints(points []Point) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}
