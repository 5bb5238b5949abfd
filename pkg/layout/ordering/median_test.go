package ordering

import (
	"testing"

	"github.com/matzehuels/dagviz/pkg/dag"
)

// rankedGraph builds a graph, breaks no cycles, and assigns the given ranks
// directly. Edges must already point from lower to higher ranks.
func rankedGraph(t *testing.T, ranks map[string]int, order []string, edges [][2]string) *dag.DAG {
	t.Helper()
	g := dag.New()
	for _, id := range order {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%q): %v", id, err)
		}
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	g.SetRanks(ranks)
	return g
}

func TestMedianResolvesSimpleCrossing(t *testing.T) {
	// The breadth-first seed orders rank 1 as [x y], where b→x crosses
	// a→y. One downward median pass swaps x and y and removes it.
	g := rankedGraph(t,
		map[string]int{"a": 0, "b": 0, "x": 1, "y": 1},
		[]string{"a", "b", "x", "y"},
		[][2]string{{"a", "x"}, {"a", "y"}, {"b", "x"}},
	)

	if got := dag.CountCrossings(g, initialOrders(g)); got != 1 {
		t.Fatalf("initial crossings = %d, want 1", got)
	}

	orders := Median{}.OrderRanks(g)

	if got := dag.CountCrossings(g, orders); got != 0 {
		t.Errorf("crossings = %d, want 0 (orders: %v)", got, orders)
	}
}

func TestMedianNeverWorseThanInitial(t *testing.T) {
	g := rankedGraph(t,
		map[string]int{"a": 0, "b": 0, "c": 0, "x": 1, "y": 1, "z": 1},
		[]string{"a", "b", "c", "x", "y", "z"},
		[][2]string{{"a", "z"}, {"b", "y"}, {"c", "x"}, {"a", "x"}, {"c", "z"}},
	)

	initial := dag.CountCrossings(g, initialOrders(g))
	final := dag.CountCrossings(g, Median{}.OrderRanks(g))

	if final > initial {
		t.Errorf("final crossings %d > initial %d", final, initial)
	}
}

func TestMedianDeterministic(t *testing.T) {
	build := func() *dag.DAG {
		return rankedGraph(t,
			map[string]int{"a": 0, "b": 0, "x": 1, "y": 1, "p": 2, "q": 2},
			[]string{"a", "b", "x", "y", "p", "q"},
			[][2]string{{"a", "y"}, {"b", "x"}, {"x", "q"}, {"y", "p"}, {"a", "x"}},
		)
	}

	first := Median{}.OrderRanks(build())
	for i := 0; i < 5; i++ {
		got := Median{}.OrderRanks(build())
		for r, ids := range first {
			for j := range ids {
				if got[r][j] != ids[j] {
					t.Fatalf("run %d rank %d = %v, first run %v", i, r, got[r], ids)
				}
			}
		}
	}
}

func TestMedianSymmetricDiamondKeepsInsertionOrder(t *testing.T) {
	// Both middle nodes have the same single parent and the same single
	// child, so medians tie and insertion order must win.
	g := rankedGraph(t,
		map[string]int{"top": 0, "l": 1, "r": 1, "bottom": 2},
		[]string{"top", "l", "r", "bottom"},
		[][2]string{{"top", "l"}, {"top", "r"}, {"l", "bottom"}, {"r", "bottom"}},
	)

	orders := Median{}.OrderRanks(g)

	if got := orders[1]; got[0] != "l" || got[1] != "r" {
		t.Errorf("rank 1 = %v, want [l r] (insertion order on ties)", got)
	}
}

func TestReorderByMedianNoNeighborKeepsPosition(t *testing.T) {
	// "float" has no parents; its median falls back to its current index,
	// so it stays put while p and q swap around it.
	g := rankedGraph(t,
		map[string]int{"a": 0, "b": 0, "c": 0, "p": 1, "float": 1, "q": 1},
		[]string{"a", "b", "c", "p", "float", "q"},
		[][2]string{{"c", "p"}, {"a", "q"}},
	)
	orders := map[int][]string{
		0: {"a", "b", "c"},
		1: {"p", "float", "q"},
	}

	reorderByMedian(g, orders, 1, 0, true)

	want := []string{"q", "float", "p"}
	for i, id := range want {
		if orders[1][i] != id {
			t.Fatalf("rank 1 = %v, want %v", orders[1], want)
		}
	}
}

func TestMedianOfPositions(t *testing.T) {
	adjPos := map[string]int{"a": 0, "b": 1, "c": 2, "d": 5}

	tests := []struct {
		name      string
		neighbors []string
		want      float64
	}{
		{"odd count", []string{"a", "b", "c"}, 1},
		{"even count mean of middles", []string{"a", "b", "c", "d"}, 1.5},
		{"single", []string{"d"}, 5},
		{"no neighbors fallback", nil, 7},
		{"unknown neighbors fallback", []string{"zz"}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := medianOf(tt.neighbors, adjPos, 7); got != tt.want {
				t.Errorf("medianOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInitialOrdersBreadthFirst(t *testing.T) {
	// b is inserted before a in rank 1, but a's parent comes first in rank
	// 0, so breadth-first discovery puts a first.
	g := rankedGraph(t,
		map[string]int{"p1": 0, "p2": 0, "b": 1, "a": 1},
		[]string{"p1", "p2", "b", "a"},
		[][2]string{{"p1", "a"}, {"p2", "b"}},
	)

	orders := initialOrders(g)

	if got := orders[1]; got[0] != "a" || got[1] != "b" {
		t.Errorf("rank 1 = %v, want [a b]", got)
	}
}
