package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected
	// in the effective (reversed-aware) edge direction. Cycles are detected
	// using depth-first search with white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrRankViolation is returned by [DAG.Validate] when an edge segment
	// connects nodes that are not in consecutive ranks after subdivision.
	ErrRankViolation = errors.New("edge segments must connect consecutive ranks")
)

// NodeKind distinguishes between caller-supplied and synthetic nodes created
// during layout.
type NodeKind int

const (
	// NodeKindRegular represents an original graph node supplied by the caller.
	NodeKindRegular NodeKind = iota
	// NodeKindVirtual represents a synthetic node inserted where an edge
	// passes through an intermediate rank. Virtual nodes exist only inside
	// the layout pipeline and never appear in the final geometry as nodes.
	NodeKindVirtual
)

// Node represents a vertex in the working layout graph.
//
// Rank and Order are assigned by the ranking and ordering passes; X and Y by
// the coordinate pass. The zero value is not usable - ID must be set before
// adding to a DAG.
type Node struct {
	ID    string  // Unique identifier
	Label string  // Display label (defaults to ID)
	Shape string  // Visual shape hint carried through to renderers; empty means rectangle
	W, H  float64 // Intrinsic size; virtual nodes have zero size

	Rank  int // Layer assignment (0 = source layer)
	Order int // Position within the rank, assigned by the orderer

	X, Y float64 // Final center coordinates, assigned by the coordinate pass

	// Kind indicates whether this is an original or synthetic node.
	Kind NodeKind
	// EdgeID links a virtual node back to the edge whose chain owns it.
	// Only meaningful when Kind is NodeKindVirtual.
	EdgeID int
}

// IsVirtual reports whether the node was inserted to subdivide a long edge.
func (n *Node) IsVirtual() bool { return n.Kind == NodeKindVirtual }

// Edge represents a directed connection between two nodes.
//
// Edges are never removed once added. Cycle breaking flips From/To and sets
// the Reversed flag instead of mutating the edge destructively, so the
// caller's declared direction is always recoverable via [Edge.Original].
type Edge struct {
	ID   int    // Insertion index, unique per DAG
	From string // Effective source node ID (reversed-aware)
	To   string // Effective target node ID (reversed-aware)

	// Reversed is set by cycle breaking when the edge's effective direction
	// is opposite to the caller's declared direction.
	Reversed bool

	// Chain holds the virtual node IDs subdividing this edge, ordered from
	// From to To. Empty for edges spanning a single rank step.
	Chain []string
}

// IsSelfLoop reports whether the edge connects a node to itself.
// Self-loop edges are excluded from ranking and ordering.
func (e *Edge) IsSelfLoop() bool { return e.From == e.To }

// Original returns the caller-declared endpoints, undoing any reversal.
func (e *Edge) Original() (from, to string) {
	if e.Reversed {
		return e.To, e.From
	}
	return e.From, e.To
}

// DAG is a directed graph optimized for rank-based layered layouts.
//
// Node insertion order is preserved and used as the tie-break for every
// traversal, which makes all layout passes deterministic given identical
// input order. Self-loop edges are stored but excluded from the adjacency
// indices, so they never participate in ranking or ordering.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []string            // node IDs in insertion order
	edges    []*Edge             // all edges, including self-loops, in insertion order
	outgoing map[string][]string // nodeID -> children IDs (segment level)
	incoming map[string][]string // nodeID -> parent IDs (segment level)
	ranks    map[int][]*Node     // rank -> nodes in that rank
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		ranks:    make(map[int][]*Node),
	}
}

// AddNode adds a node to the graph and indexes it by its Rank.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node.ID)
	d.ranks[node.Rank] = append(d.ranks[node.Rank], node)
	return nil
}

// AddEdge adds a directed edge between two existing nodes and returns it.
// Returns ErrUnknownSourceNode if the From node doesn't exist, or
// ErrUnknownTargetNode if the To node doesn't exist.
//
// Self-loops are stored but excluded from the adjacency indices; duplicate
// edges between the same nodes are allowed and kept as distinct edges.
func (d *DAG) AddEdge(from, to string) (*Edge, error) {
	if _, ok := d.nodes[from]; !ok {
		return nil, ErrUnknownSourceNode
	}
	if _, ok := d.nodes[to]; !ok {
		return nil, ErrUnknownTargetNode
	}
	e := &Edge{ID: len(d.edges), From: from, To: to}
	d.edges = append(d.edges, e)
	if !e.IsSelfLoop() {
		d.outgoing[from] = append(d.outgoing[from], to)
		d.incoming[to] = append(d.incoming[to], from)
	}
	return e, nil
}

// Reverse flips the effective direction of an edge, toggling its Reversed
// flag and updating the adjacency indices. Reverse must be called before the
// edge is subdivided; reversing a chained or self-loop edge panics, as both
// indicate a pass-ordering bug in the caller.
func (d *DAG) Reverse(e *Edge) {
	if len(e.Chain) > 0 {
		panic("dag: reverse of subdivided edge")
	}
	if e.IsSelfLoop() {
		panic("dag: reverse of self-loop edge")
	}
	d.removeAdjacency(e.From, e.To)
	e.From, e.To = e.To, e.From
	e.Reversed = !e.Reversed
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
}

// SetChain records the virtual node chain subdividing e and rewires the
// adjacency indices so that only consecutive-rank segments remain:
// From → chain[0] → ... → chain[len-1] → To.
//
// The virtual nodes must already have been added to the graph.
func (d *DAG) SetChain(e *Edge, chain []string) {
	d.removeAdjacency(e.From, e.To)
	prev := e.From
	for _, id := range chain {
		d.outgoing[prev] = append(d.outgoing[prev], id)
		d.incoming[id] = append(d.incoming[id], prev)
		prev = id
	}
	d.outgoing[prev] = append(d.outgoing[prev], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], prev)
	e.Chain = chain
}

// removeAdjacency deletes the first From→To entry from both indices.
func (d *DAG) removeAdjacency(from, to string) {
	if i := slices.Index(d.outgoing[from], to); i >= 0 {
		d.outgoing[from] = slices.Delete(d.outgoing[from], i, i+1)
	}
	if i := slices.Index(d.incoming[to], from); i >= 0 {
		d.incoming[to] = slices.Delete(d.incoming[to], i, i+1)
	}
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers to the actual node in the graph.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
// The returned slice contains pointers to the actual node structs.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, len(d.order))
	for i, id := range d.order {
		nodes[i] = d.nodes[id]
	}
	return nodes
}

// Edges returns all edges in insertion order, including self-loops.
// The returned slice shares edge pointers with the graph.
func (d *DAG) Edges() []*Edge { return slices.Clone(d.edges) }

// SelfLoops returns the edges whose source and target are the same node.
func (d *DAG) SelfLoops() []*Edge {
	var loops []*Edge
	for _, e := range d.edges {
		if e.IsSelfLoop() {
			loops = append(loops, e)
		}
	}
	return loops
}

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph, including self-loops.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of nodes this node has effective edges to.
// After subdivision the list is segment-level, so all children are exactly
// one rank below. The returned slice is a read-only view.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of nodes with effective edges to this node.
// The returned slice is a read-only view.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of effective outgoing edges from the node.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of effective incoming edges to the node.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Sources returns nodes with no effective incoming edges, in insertion order.
// Self-loops do not count as incoming edges, so an isolated node with only a
// loop on itself is still a source.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, d.nodes[id])
		}
	}
	return sources
}

// SetRanks updates rank assignments and rebuilds the rank index.
// Nodes not present in the ranks map retain their current assignment.
// Insertion order is preserved within each rank.
func (d *DAG) SetRanks(ranks map[string]int) {
	d.ranks = make(map[int][]*Node)
	for _, id := range d.order {
		n := d.nodes[id]
		if rank, ok := ranks[n.ID]; ok {
			n.Rank = rank
		}
		d.ranks[n.Rank] = append(d.ranks[n.Rank], n)
	}
}

// NodesInRank returns all nodes assigned to the given rank, in the order
// they were inserted (or last re-indexed by SetRanks).
func (d *DAG) NodesInRank(rank int) []*Node { return d.ranks[rank] }

// RankCount returns the number of distinct ranks in the graph.
func (d *DAG) RankCount() int { return len(d.ranks) }

// RankIDs returns all rank indices in sorted ascending order.
func (d *DAG) RankIDs() []int {
	return slices.Sorted(maps.Keys(d.ranks))
}

// MaxRank returns the highest rank index, or 0 if the graph is empty.
func (d *DAG) MaxRank() int {
	if len(d.ranks) == 0 {
		return 0
	}
	ids := d.RankIDs()
	return ids[len(ids)-1]
}

// Validate checks graph integrity and returns nil if valid.
// It verifies two constraints on the effective (reversed-aware) direction:
//
//  1. The graph is acyclic (no directed cycles exist)
//  2. Every adjacency segment connects consecutive ranks, provided ranks
//     have been assigned (skipped when all nodes are still at rank 0)
//
// Use this after cycle breaking or subdivision to assert pass invariants.
// Cycle detection runs in O(N+E) time using depth-first search.
func (d *DAG) Validate() error {
	if err := d.detectCycles(); err != nil {
		return err
	}
	if d.RankCount() <= 1 {
		return nil
	}
	for _, id := range d.order {
		src := d.nodes[id]
		for _, child := range d.outgoing[id] {
			if d.nodes[child].Rank != src.Rank+1 {
				return ErrRankViolation
			}
		}
	}
	return nil
}

func (d *DAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range d.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// PosMap creates a position lookup map from a slice of node IDs.
// The returned map maps each ID to its index in the slice.
// This is commonly used to convert rank orderings into fast position lookups
// for crossing calculations.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the ID from each node in a slice, preserving order.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
