package transform

import (
	"fmt"

	"github.com/matzehuels/dagviz/pkg/dag"
)

// Subdivide breaks edges that span multiple ranks into sequences of
// single-rank segments connected by virtual nodes.
//
// Subdivide ensures every adjacency segment in the graph connects nodes in
// consecutive ranks (source.Rank + 1 == target.Rank). Any edge spanning
// multiple ranks gets a chain of [dag.NodeKindVirtual] nodes, one per
// intermediate rank. For example:
//
//	Before: app (rank 0) → core (rank 3)  [spans 3 ranks]
//	After:  app → app_v_1 → app_v_2 → core  [3 single-rank segments]
//
// The chain is recorded on the owning edge so the edge router can extract
// the virtual coordinates as path points. Virtual nodes carry the owning
// edge's ID and never escape the layout pipeline.
//
// # Node IDs
//
// Virtual nodes are assigned IDs of the form "source_v_rank" (e.g.,
// "app_v_1"). If a collision occurs, a numeric suffix is appended
// ("app_v_1__2"). All generated IDs are tracked to guarantee uniqueness.
//
// # Nil Handling
//
// Subdivide panics if g is nil. If g has no multi-rank edges, the function
// is a no-op.
//
// # Performance
//
// Time complexity is O(E·D) where E is edges and D is the maximum span
// (rank count), as each edge may spawn virtuals equal to its span. Space
// complexity is O(V) for tracking used IDs.
func Subdivide(g *dag.DAG) {
	gen := newIDGen(g.Nodes())
	for _, e := range g.Edges() {
		if e.IsSelfLoop() {
			continue
		}
		src, srcOK := g.Node(e.From)
		dst, dstOK := g.Node(e.To)
		if !srcOK || !dstOK || dst.Rank <= src.Rank+1 {
			continue
		}

		chain := make([]string, 0, dst.Rank-src.Rank-1)
		for rank := src.Rank + 1; rank < dst.Rank; rank++ {
			id := gen.next(src.ID, rank)
			if err := g.AddNode(dag.Node{
				ID:     id,
				Rank:   rank,
				Kind:   dag.NodeKindVirtual,
				EdgeID: e.ID,
			}); err != nil {
				panic(err)
			}
			chain = append(chain, id)
		}
		g.SetChain(e, chain)
	}
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(base string, rank int) string {
	prefix := fmt.Sprintf("%s_v_%d", base, rank)
	id := prefix
	for i := 1; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
