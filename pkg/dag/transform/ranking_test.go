package transform

import (
	"testing"

	"github.com/matzehuels/dagviz/pkg/dag"
)

func rankOf(t *testing.T, g *dag.DAG, id string) int {
	t.Helper()
	n, ok := g.Node(id)
	if !ok {
		t.Fatalf("node %q not found", id)
	}
	return n.Rank
}

func TestAssignRanks_Chain(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})

	AssignRanks(g)

	want := map[string]int{"a": 0, "b": 1, "c": 2}
	for id, rank := range want {
		if got := rankOf(t, g, id); got != rank {
			t.Errorf("rank(%s) = %d, want %d", id, got, rank)
		}
	}
}

func TestAssignRanks_LongestPath(t *testing.T) {
	// Diamond with a shortcut: a→b→c plus a→c. The direct edge must not
	// pull c up; c sits at one past its deepest parent.
	g := buildGraph(t, []string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})

	AssignRanks(g)

	if got := rankOf(t, g, "c"); got != 2 {
		t.Errorf("rank(c) = %d, want 2 (longest path)", got)
	}
}

func TestAssignRanks_DisconnectedComponents(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "x", "y", "lone"},
		[][2]string{{"a", "b"}, {"x", "y"}})

	AssignRanks(g)

	for _, id := range []string{"a", "x", "lone"} {
		if got := rankOf(t, g, id); got != 0 {
			t.Errorf("rank(%s) = %d, want 0", id, got)
		}
	}
	for _, id := range []string{"b", "y"} {
		if got := rankOf(t, g, id); got != 1 {
			t.Errorf("rank(%s) = %d, want 1", id, got)
		}
	}
}

func TestAssignRanks_SelfLoopIgnored(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "b"}})

	AssignRanks(g)

	if got := rankOf(t, g, "b"); got != 1 {
		t.Errorf("rank(b) = %d, want 1 (self-loop must not affect ranking)", got)
	}
}

func TestAssignRanks_EdgesPointDownward(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}, {"a", "d"}})

	AssignRanks(g)

	for _, e := range g.Edges() {
		src, _ := g.Node(e.From)
		dst, _ := g.Node(e.To)
		if dst.Rank <= src.Rank {
			t.Errorf("edge %s(%d) -> %s(%d) does not point to a higher rank",
				e.From, src.Rank, e.To, dst.Rank)
		}
	}
}

func TestAssignRanks_AfterCycleBreaking(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	BreakCycles(g)
	AssignRanks(g)
	Subdivide(g)

	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if g.RankCount() != 3 {
		t.Errorf("RankCount() = %d, want 3", g.RankCount())
	}
}
