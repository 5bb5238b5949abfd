package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/dagviz/pkg/graph"
	"github.com/matzehuels/dagviz/pkg/layout"
)

func TestToDOT(t *testing.T) {
	g := graph.New("build").
		Node("compile", "Compile", graph.WithSize(144, 72)).
		Node("test", "Test").
		Edge("compile", "test")

	dot := ToDOT(g, layout.Default())

	for _, want := range []string{
		`digraph "build" {`,
		"rankdir=TB;",
		`"compile" [label="Compile", width=2.00, height=1.00, fixedsize=true];`,
		`"test" [label="Test"];`,
		`"compile" -> "test";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTRankDir(t *testing.T) {
	tests := []struct {
		dir  layout.RankDir
		want string
	}{
		{layout.RankDirTB, "rankdir=TB;"},
		{layout.RankDirBT, "rankdir=BT;"},
		{layout.RankDirLR, "rankdir=LR;"},
		{layout.RankDirRL, "rankdir=RL;"},
		{"", "rankdir=TB;"},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir)+"_dir", func(t *testing.T) {
			dot := ToDOT(graph.New("g"), layout.Config{RankDir: tt.dir})
			if !strings.Contains(dot, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, dot)
			}
		})
	}
}

func TestToDOTUnnamedGraph(t *testing.T) {
	dot := ToDOT(graph.New(""), layout.Default())
	if !strings.Contains(dot, `digraph "G" {`) {
		t.Errorf("unnamed graph header wrong:\n%s", dot)
	}
}

func TestToDOTQuotesIdentifiers(t *testing.T) {
	g := graph.New("g").Node(`weird"id`, "").Edge(`weird"id`, `weird"id`)
	dot := ToDOT(g, layout.Default())
	if !strings.Contains(dot, `"weird\"id"`) {
		t.Errorf("identifier not quoted:\n%s", dot)
	}
}
