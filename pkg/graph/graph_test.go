package graph

import (
	"testing"
)

func TestNodeInsertionOrder(t *testing.T) {
	g := New("").Node("c", "").Node("a", "").Node("b", "")

	want := []string{"c", "a", "b"}
	for i, id := range want {
		if g.Nodes[i].ID != id {
			t.Fatalf("Nodes[%d].ID = %q, want %q", i, g.Nodes[i].ID, id)
		}
	}
}

func TestNodeReplaceInPlace(t *testing.T) {
	g := New("").
		Node("a", "first").
		Node("b", "").
		Node("a", "second", WithSize(60, 20))

	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if g.Nodes[0].ID != "a" {
		t.Errorf("re-adding moved node to position %d", 0)
	}
	if g.Nodes[0].Label != "second" || g.Nodes[0].Width != 60 {
		t.Errorf("re-add did not replace attributes: %+v", g.Nodes[0])
	}
}

func TestEdgeAutoCreatesEndpoints(t *testing.T) {
	g := New("").Edge("a", "b")

	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", g.NodeCount())
	}
	n, ok := g.Lookup("b")
	if !ok {
		t.Fatal("Lookup(b) failed")
	}
	if n.Label != "" || n.Width != 0 {
		t.Errorf("implicit node has non-default attributes: %+v", n)
	}
}

func TestEdgeDuplicatesAndSelfLoopsKept(t *testing.T) {
	g := New("").Edge("a", "b").Edge("a", "b").Edge("a", "a")

	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
}

func TestNodeLabelNewlines(t *testing.T) {
	g := New("").Node("a", "line one\nline two")

	n, _ := g.Lookup("a")
	if n.Label != "line one<br/>line two" {
		t.Errorf("Label = %q, want newline converted to <br/>", n.Label)
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"label set", Node{ID: "a", Label: "Alpha"}, "Alpha"},
		{"label empty", Node{ID: "a"}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.DisplayLabel(); got != tt.want {
				t.Errorf("DisplayLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNodeOptions(t *testing.T) {
	g := New("").Node("a", "A", WithSize(80, 30), WithAttr("shape", "diamond"))

	n, _ := g.Lookup("a")
	if n.Width != 80 || n.Height != 30 {
		t.Errorf("size = %vx%v, want 80x30", n.Width, n.Height)
	}
	if n.Attrs["shape"] != "diamond" {
		t.Errorf("Attrs = %v, want shape=diamond", n.Attrs)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := New("").Lookup("missing"); ok {
		t.Error("Lookup returned true for an unknown node")
	}
}

func TestRoundTrip(t *testing.T) {
	g := New("pipeline").
		Node("extract", "Extract", WithSize(120, 50)).
		Edge("extract", "transform").
		Edge("transform", "load", map[string]any{"weight": "2"})

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if got.Name != "pipeline" {
		t.Errorf("Name = %q, want %q", got.Name, "pipeline")
	}
	if got.NodeCount() != 3 || got.EdgeCount() != 2 {
		t.Fatalf("got %d nodes and %d edges, want 3 and 2", got.NodeCount(), got.EdgeCount())
	}
	for i := range g.Nodes {
		if got.Nodes[i].ID != g.Nodes[i].ID {
			t.Errorf("Nodes[%d].ID = %q, want %q (order must survive)", i, got.Nodes[i].ID, g.Nodes[i].ID)
		}
	}

	// The decoded graph must be usable without manual reindexing.
	if _, ok := got.Lookup("transform"); !ok {
		t.Error("Lookup failed on a decoded graph")
	}
	got.Edge("load", "archive")
	if got.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d after extending decoded graph, want 4", got.NodeCount())
	}
}
