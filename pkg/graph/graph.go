// Package graph provides the caller-facing graph model for dagviz.
//
// A Graph is built incrementally through a permissive fluent API and then
// handed to the layout engine as a frozen snapshot:
//
//	g := graph.New("pipeline")
//	g.Node("extract", "Extract").
//	    Node("load", "Load").
//	    Edge("extract", "transform"). // auto-creates "transform"
//	    Edge("transform", "load")
//
// Node and edge insertion order is preserved; the layout engine relies on it
// for deterministic output. Unknown node IDs referenced by an edge are
// created implicitly with default attributes.
//
// The model serializes to JSON (and BSON for the optional store) with full
// round-trip fidelity.
package graph

import (
	"strings"
)

// Node is a caller-supplied vertex with display attributes.
type Node struct {
	ID     string         `json:"id" bson:"id"`
	Label  string         `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Width  float64        `json:"width,omitempty" bson:"width,omitempty"`
	Height float64        `json:"height,omitempty" bson:"height,omitempty"`
	Attrs  map[string]any `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a caller-supplied directed connection between two nodes.
type Edge struct {
	From  string         `json:"from" bson:"from"`
	To    string         `json:"to" bson:"to"`
	Attrs map[string]any `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// Graph is an ordered collection of nodes and edges.
//
// Graph is not safe for concurrent use; a graph must not be mutated while a
// layout computation is reading it.
type Graph struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`

	index map[string]int // node ID -> position in Nodes
}

// New creates an empty named graph. The name is used as the document title
// by the HTML renderer and may be empty.
func New(name string) *Graph {
	return &Graph{Name: name, index: make(map[string]int)}
}

// NodeOption customizes a node added through the fluent API.
type NodeOption func(*Node)

// WithSize sets an explicit node size, overriding the layout default.
func WithSize(width, height float64) NodeOption {
	return func(n *Node) {
		n.Width = width
		n.Height = height
	}
}

// WithAttr attaches an arbitrary styling attribute to the node.
func WithAttr(key string, value any) NodeOption {
	return func(n *Node) {
		if n.Attrs == nil {
			n.Attrs = make(map[string]any)
		}
		n.Attrs[key] = value
	}
}

// Node adds a node and returns the graph for chaining. Newlines in the label
// are converted to "<br/>" for HTML rendering. Re-adding an existing ID
// replaces that node's attributes in place, keeping its original position.
func (g *Graph) Node(id, label string, opts ...NodeOption) *Graph {
	n := Node{ID: id, Label: strings.ReplaceAll(label, "\n", "<br/>")}
	for _, opt := range opts {
		opt(&n)
	}
	g.put(n)
	return g
}

// Edge adds a directed edge and returns the graph for chaining. Endpoints
// that do not exist yet are created implicitly with default attributes.
// Duplicate edges are kept; self-loops are allowed.
func (g *Graph) Edge(from, to string, attrs ...map[string]any) *Graph {
	g.ensure(from)
	g.ensure(to)
	e := Edge{From: from, To: to}
	if len(attrs) > 0 {
		e.Attrs = attrs[0]
	}
	g.Edges = append(g.Edges, e)
	return g
}

// Lookup returns a pointer to the node with the given ID, or nil and false.
func (g *Graph) Lookup(id string) (*Node, bool) {
	g.reindex()
	if i, ok := g.index[id]; ok {
		return &g.Nodes[i], true
	}
	return nil, false
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// put inserts or replaces a node, preserving insertion order.
func (g *Graph) put(n Node) {
	g.reindex()
	if i, ok := g.index[n.ID]; ok {
		g.Nodes[i] = n
		return
	}
	g.index[n.ID] = len(g.Nodes)
	g.Nodes = append(g.Nodes, n)
}

// ensure creates the node with default attributes if it does not exist.
func (g *Graph) ensure(id string) {
	g.reindex()
	if _, ok := g.index[id]; !ok {
		g.index[id] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{ID: id})
	}
}

// reindex rebuilds the ID index after deserialization, when the unexported
// index map is nil but Nodes is populated.
func (g *Graph) reindex() {
	if g.index != nil {
		return
	}
	g.index = make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		g.index[n.ID] = i
	}
}
