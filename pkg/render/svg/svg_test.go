package svg

import (
	"strings"
	"testing"

	"github.com/matzehuels/dagviz/pkg/graph"
	"github.com/matzehuels/dagviz/pkg/layout"
)

func computeFixture(t *testing.T, cfg layout.Config) layout.Geometry {
	t.Helper()
	g := graph.New("fixture").
		Node("a", "Start").
		Node("b", "Middle").
		Node("c", "End").
		Edge("a", "b").
		Edge("b", "c").
		Edge("a", "c")
	geo, err := layout.Compute(g, cfg)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return geo
}

func TestRenderProducesValidDocument(t *testing.T) {
	geo := computeFixture(t, layout.Config{})
	out := string(Render(geo))

	if !strings.HasPrefix(out, "<svg xmlns=") {
		t.Errorf("output does not start with an svg element:\n%.80s", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("output is not closed")
	}
	for _, id := range []string{"a", "b", "c"} {
		if !strings.Contains(out, `data-id="`+id+`"`) {
			t.Errorf("node %q missing from output", id)
		}
	}
	if got := strings.Count(out, `class="edge"`); got != 3 {
		t.Errorf("edge count = %d, want 3", got)
	}
	if !strings.Contains(out, `marker-end="url(#arrow)"`) {
		t.Error("edges carry no arrowhead marker")
	}
}

func TestRenderEscapesLabels(t *testing.T) {
	g := graph.New("esc").Node("a", `<script>&`)
	geo, err := layout.Compute(g, layout.Config{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	out := string(Render(geo))
	if strings.Contains(out, "<script>&</") {
		t.Error("label was not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;&amp;") {
		t.Error("escaped label missing from output")
	}
}

func TestRenderNodeShapes(t *testing.T) {
	g := graph.New("shapes").
		Node("r", "Rect").
		Node("c", "Circle", graph.WithAttr("shape", "circle")).
		Node("e", "Ellipse", graph.WithAttr("shape", "ellipse")).
		Edge("r", "c").
		Edge("r", "e")
	geo, err := layout.Compute(g, layout.Config{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	out := string(Render(geo))
	if !strings.Contains(out, "<rect ") {
		t.Error("default node did not render as a rect")
	}
	if !strings.Contains(out, "<circle ") {
		t.Error("shape=circle node did not render as a circle")
	}
	if !strings.Contains(out, "<ellipse ") {
		t.Error("shape=ellipse node did not render as an ellipse")
	}
}

func TestRenderCurvedUsesQuadraticSegments(t *testing.T) {
	geo := computeFixture(t, layout.Config{EdgeStyle: layout.EdgeStyleCurved})
	out := string(Render(geo))

	// The a->c edge spans two ranks and gets a virtual waypoint, so at
	// least one path must contain a quadratic segment.
	if !strings.Contains(out, " Q ") {
		t.Error("curved rendering produced no quadratic segments")
	}
}

func TestRenderInteractive(t *testing.T) {
	geo := computeFixture(t, layout.Config{})
	out := string(Render(geo, WithInteractive()))

	if !strings.Contains(out, "<script>") {
		t.Error("interactive output missing script element")
	}
	if !strings.Contains(out, "mouseenter") {
		t.Error("interactive output missing hover handlers")
	}
}

func TestRenderEmptyGeometry(t *testing.T) {
	geo, err := layout.Compute(graph.New("empty"), layout.Config{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	out := string(Render(geo))
	if !strings.Contains(out, `viewBox="0 0 0.0 0.0"`) {
		t.Errorf("empty geometry viewBox wrong:\n%.120s", out)
	}
}
