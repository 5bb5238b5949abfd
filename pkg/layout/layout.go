// Package layout computes deterministic layered layouts for directed graphs.
//
// A layout run executes a fixed pipeline over an internal working copy of
// the caller's graph:
//
//  1. Cycle breaking: back edges are flagged and flipped so ranking sees an
//     acyclic graph; callers always get their declared edge direction back.
//  2. Ranking: every node is assigned the longest-path layer from the
//     sources, so each edge points from a lower rank to a strictly higher one.
//  3. Subdivision: edges spanning more than one rank are threaded through
//     virtual nodes so every drawn segment connects adjacent ranks.
//  4. Ordering: crossing-minimization sweeps fix the left-to-right order of
//     each rank.
//  5. Coordinates: nodes receive concrete positions respecting the rank
//     direction, spacing, and margin.
//  6. Routing: every edge gets a polyline through its virtual nodes.
//
// The same graph and configuration always produce byte-identical geometry.
package layout

import (
	"time"

	"github.com/matzehuels/dagviz/pkg/dag"
	"github.com/matzehuels/dagviz/pkg/dag/transform"
	"github.com/matzehuels/dagviz/pkg/errors"
	"github.com/matzehuels/dagviz/pkg/graph"
	"github.com/matzehuels/dagviz/pkg/observability"
)

// Compute lays out src and returns the finalized geometry. The input graph
// is never mutated; all intermediate state lives in a private working copy.
// Edge endpoints that were never declared as nodes are laid out with default
// attributes, mirroring the fluent builder.
//
// Returns an INVALID_CONFIG error for unresolvable configurations and an
// INVALID_NODE_ID error for malformed node identifiers.
func Compute(src *graph.Graph, cfg Config) (Geometry, error) {
	resolved, err := cfg.Resolve()
	if err != nil {
		return Geometry{}, err
	}

	observability.Layout().OnLayoutStart(src.NodeCount(), src.EdgeCount())
	start := time.Now()

	geo, err := compute(src, resolved)
	observability.Layout().OnLayoutComplete(src.NodeCount(), time.Since(start), err)
	return geo, err
}

func compute(src *graph.Graph, cfg Config) (Geometry, error) {
	if src.NodeCount() == 0 && src.EdgeCount() == 0 {
		return Geometry{
			Nodes:  []NodeGeometry{},
			Edges:  []EdgeGeometry{},
			Config: cfg,
		}, nil
	}

	g, err := buildWorkingCopy(src)
	if err != nil {
		return Geometry{}, err
	}

	transform.BreakCycles(g)
	transform.AssignRanks(g)
	transform.Subdivide(g)
	if err := g.Validate(); err != nil {
		return Geometry{}, errors.Wrap(errors.ErrCodeInternal, err, "layered graph validation failed")
	}

	orders := cfg.orderer().OrderRanks(g)
	applyOrders(g, orders)

	width, height := assignCoordinates(g, orders, cfg)
	edges := routeEdges(g, cfg)

	return Geometry{
		Nodes:  collectNodes(g),
		Edges:  edges,
		Width:  width,
		Height: height,
		Config: cfg,
	}, nil
}

// buildWorkingCopy converts the caller's graph into the internal working
// representation, validating identifiers and filling in default node sizes.
func buildWorkingCopy(src *graph.Graph) (*dag.DAG, error) {
	g := dag.New()

	for i := range src.Nodes {
		n := &src.Nodes[i]
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return nil, err
		}
		w, h := n.Width, n.Height
		if w <= 0 {
			w = DefaultNodeWidth
		}
		if h <= 0 {
			h = DefaultNodeHeight
		}
		if err := g.AddNode(dag.Node{ID: n.ID, Label: n.DisplayLabel(), Shape: shapeAttr(n), W: w, H: h}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "add node %q", n.ID)
		}
	}

	for _, e := range src.Edges {
		if err := ensureEndpoint(g, e.From); err != nil {
			return nil, err
		}
		if err := ensureEndpoint(g, e.To); err != nil {
			return nil, err
		}
		if _, err := g.AddEdge(e.From, e.To); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "add edge %s -> %s", e.From, e.To)
		}
	}

	return g, nil
}

// ensureEndpoint adds an implicit node for an edge endpoint the caller never
// declared, matching the permissive fluent builder: a creatable unknown id
// becomes a node with default attributes, an uncreatable id aborts layout.
func ensureEndpoint(g *dag.DAG, id string) error {
	if _, ok := g.Node(id); ok {
		return nil
	}
	if err := errors.ValidateNodeID(id); err != nil {
		return err
	}
	if err := g.AddNode(dag.Node{ID: id, Label: id, W: DefaultNodeWidth, H: DefaultNodeHeight}); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "add node %q", id)
	}
	return nil
}

// shapeAttr extracts the visual shape hint from a node's attributes.
func shapeAttr(n *graph.Node) string {
	if s, ok := n.Attrs["shape"].(string); ok {
		return s
	}
	return ""
}

// applyOrders stamps the final within-rank positions onto the nodes.
func applyOrders(g *dag.DAG, orders map[int][]string) {
	for _, ids := range orders {
		for i, id := range ids {
			if n, ok := g.Node(id); ok {
				n.Order = i
			}
		}
	}
}

// collectNodes extracts the caller-visible node placements in insertion
// order. Virtual nodes stay internal.
func collectNodes(g *dag.DAG) []NodeGeometry {
	nodes := make([]NodeGeometry, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		if n.Kind == dag.NodeKindVirtual {
			continue
		}
		nodes = append(nodes, NodeGeometry{
			ID:     n.ID,
			Label:  n.Label,
			Shape:  n.Shape,
			X:      n.X - n.W/2,
			Y:      n.Y - n.H/2,
			Width:  n.W,
			Height: n.H,
			Rank:   n.Rank,
			Order:  n.Order,
		})
	}
	return nodes
}
