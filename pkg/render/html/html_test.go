package html

import (
	"strings"
	"testing"

	"github.com/matzehuels/dagviz/pkg/graph"
	"github.com/matzehuels/dagviz/pkg/layout"
)

func TestRenderPage(t *testing.T) {
	g := graph.New("deps").
		Node("app", "App").
		Node("lib", "Library").
		Edge("app", "lib")
	geo, err := layout.Compute(g, layout.Config{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	out, err := Render(geo, "Dependency Graph")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := string(out)

	if !strings.Contains(doc, "<title>Dependency Graph</title>") {
		t.Error("title missing")
	}
	if !strings.Contains(doc, "<svg xmlns=") {
		t.Error("embedded SVG missing")
	}
	if !strings.Contains(doc, `"lib":["app"]`) {
		t.Errorf("parent map missing lib entry:\n%s", doc)
	}
	if !strings.Contains(doc, `"app":["lib"]`) {
		t.Errorf("child map missing app entry:\n%s", doc)
	}
}

func TestRenderDefaultTitle(t *testing.T) {
	geo, err := layout.Compute(graph.New(""), layout.Config{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	out, err := Render(geo, "")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "<title>dagviz</title>") {
		t.Error("default title missing")
	}
}

func TestAdjacencySkipsSelfLoops(t *testing.T) {
	geo := layout.Geometry{
		Edges: []layout.EdgeGeometry{
			{From: "a", To: "a", SelfLoop: true},
			{From: "a", To: "b"},
		},
	}
	parents, children := adjacency(geo)

	if got := parents["a"]; len(got) != 0 {
		t.Errorf("parents[a] = %v, want empty", got)
	}
	if got := children["a"]; len(got) != 1 || got[0] != "b" {
		t.Errorf("children[a] = %v, want [b]", got)
	}
}
