// Package dot exports graphs to Graphviz DOT and rasterizes DOT through
// the embedded Graphviz engine. It is an alternative drawing path for
// comparing dagviz output against Graphviz's own layered layout.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dagviz/pkg/graph"
	"github.com/matzehuels/dagviz/pkg/layout"
)

// ToDOT converts a graph to Graphviz DOT format. The rank direction and
// spacing from cfg translate to the equivalent Graphviz attributes.
func ToDOT(g *graph.Graph, cfg layout.Config) string {
	var buf bytes.Buffer
	name := g.Name
	if name == "" {
		name = "G"
	}
	fmt.Fprintf(&buf, "digraph %q {\n", name)
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir(cfg.RankDir))
	fmt.Fprintf(&buf, "  ranksep=%.2f;\n", cfg.RankSpacing/72)
	fmt.Fprintf(&buf, "  nodesep=%.2f;\n", cfg.NodeSpacing/72)
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for i := range g.Nodes {
		n := &g.Nodes[i]
		attrs := []string{fmt.Sprintf("label=%q", n.DisplayLabel())}
		if n.Width > 0 && n.Height > 0 {
			attrs = append(attrs,
				fmt.Sprintf("width=%.2f", n.Width/72),
				fmt.Sprintf("height=%.2f", n.Height/72),
				"fixedsize=true")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// rankdir maps a layout rank direction to the Graphviz rankdir attribute.
// The values happen to coincide.
func rankdir(dir layout.RankDir) string {
	if dir == "" {
		return string(layout.RankDirTB)
	}
	return string(dir)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
