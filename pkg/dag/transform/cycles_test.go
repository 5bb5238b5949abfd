package transform

import (
	"testing"

	"github.com/matzehuels/dagviz/pkg/dag"
)

func buildGraph(t *testing.T, nodeIDs []string, edges [][2]string) *dag.DAG {
	t.Helper()
	g := dag.New()
	for _, id := range nodeIDs {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%q): %v", id, err)
		}
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%q, %q): %v", e[0], e[1], err)
		}
	}
	return g
}

func TestBreakCycles_NoCycles(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})

	flipped := BreakCycles(g)

	if flipped != 0 {
		t.Errorf("BreakCycles() flipped %d edges, want 0", flipped)
	}
	for _, e := range g.Edges() {
		if e.Reversed {
			t.Errorf("edge %s->%s reversed in acyclic graph", e.From, e.To)
		}
	}
}

func TestBreakCycles_SimpleCycle(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})

	flipped := BreakCycles(g)

	if flipped != 1 {
		t.Errorf("BreakCycles() flipped %d edges, want 1", flipped)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2 (no edge may be removed)", g.EdgeCount())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after BreakCycles = %v", err)
	}

	// The flipped edge must still report its declared direction.
	for _, e := range g.Edges() {
		if e.Reversed {
			from, to := e.Original()
			if from != "b" || to != "a" {
				t.Errorf("Original() = %s->%s, want b->a", from, to)
			}
		}
	}
}

func TestBreakCycles_TriangleCycle(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	flipped := BreakCycles(g)

	if flipped != 1 {
		t.Errorf("BreakCycles() flipped %d edges, want 1", flipped)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after BreakCycles = %v", err)
	}
}

func TestBreakCycles_MultipleCycles(t *testing.T) {
	// Two separate cycles: a↔b and c↔d
	g := buildGraph(t, []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}})

	flipped := BreakCycles(g)

	if flipped != 2 {
		t.Errorf("BreakCycles() flipped %d edges, want 2", flipped)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after BreakCycles = %v", err)
	}
}

func TestBreakCycles_DuplicateEdgesInCycle(t *testing.T) {
	// Both parallel b->a edges close a cycle and both must flip.
	g := buildGraph(t, []string{"a", "b"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"b", "a"}})

	flipped := BreakCycles(g)

	if flipped != 2 {
		t.Errorf("BreakCycles() flipped %d edges, want 2", flipped)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after BreakCycles = %v", err)
	}
}

func TestBreakCycles_SelfLoopUntouched(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "b"}})

	flipped := BreakCycles(g)

	if flipped != 0 {
		t.Errorf("BreakCycles() flipped %d edges, want 0", flipped)
	}
	loops := g.SelfLoops()
	if len(loops) != 1 || loops[0].Reversed {
		t.Errorf("self-loop modified: %+v", loops)
	}
}

func TestBreakCycles_Deterministic(t *testing.T) {
	build := func() *dag.DAG {
		return buildGraph(t, []string{"a", "b", "c"},
			[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "b"}})
	}

	first := build()
	BreakCycles(first)

	for i := 0; i < 5; i++ {
		g := build()
		BreakCycles(g)
		for j, e := range g.Edges() {
			ref := first.Edges()[j]
			if e.From != ref.From || e.Reversed != ref.Reversed {
				t.Fatalf("run %d: edge %d = %+v, first run %+v", i, j, e, ref)
			}
		}
	}
}
