// Package svg renders computed layout geometry to standalone SVG documents.
package svg

import (
	"bytes"
	"fmt"
	"html"
	"time"

	"github.com/matzehuels/dagviz/pkg/layout"
	"github.com/matzehuels/dagviz/pkg/observability"
)

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	nodeFill     string
	nodeStroke   string
	edgeStroke   string
	fontSize     float64
	cornerRadius float64
	interactive  bool
}

// WithNodeFill sets the node fill color.
func WithNodeFill(color string) Option { return func(r *renderer) { r.nodeFill = color } }

// WithFontSize sets the label font size.
func WithFontSize(size float64) Option { return func(r *renderer) { r.fontSize = size } }

// WithInteractive embeds the hover-highlight script so hovering a node
// highlights its incident edges.
func WithInteractive() Option { return func(r *renderer) { r.interactive = true } }

const interactionJS = `
    document.querySelectorAll('.node').forEach(el => {
      const id = el.dataset.id;
      el.addEventListener('mouseenter', () => {
        document.querySelectorAll('.edge').forEach(e => {
          e.classList.toggle('highlight', e.dataset.from === id || e.dataset.to === id);
        });
      });
      el.addEventListener('mouseleave', () => {
        document.querySelectorAll('.edge').forEach(e => e.classList.remove('highlight'));
      });
    });`

const interactionCSS = `
    .edge { transition: stroke-width 0.15s ease; }
    .edge.highlight { stroke-width: 3; }`

// Render converts a geometry into a complete SVG document.
func Render(geo layout.Geometry, opts ...Option) []byte {
	observability.Layout().OnRenderStart("svg")
	start := time.Now()

	r := renderer{
		nodeFill:     "#ffffff",
		nodeStroke:   "#1f2430",
		edgeStroke:   "#1f2430",
		fontSize:     13,
		cornerRadius: 4,
	}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		geo.Width, geo.Height, geo.Width, geo.Height)

	r.renderDefs(&buf)
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)
	}

	for _, e := range geo.Edges {
		r.renderEdge(&buf, e, geo.Config.EdgeStyle)
	}
	for _, n := range geo.Nodes {
		r.renderNode(&buf, n)
	}

	if r.interactive {
		fmt.Fprintf(&buf, "  <script><![CDATA[%s\n  ]]></script>\n", interactionJS)
	}

	buf.WriteString("</svg>\n")

	out := buf.Bytes()
	observability.Layout().OnRenderComplete("svg", len(out), time.Since(start))
	return out
}

func (r *renderer) renderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/>
    </marker>
  </defs>
`, r.edgeStroke)
}

func (r *renderer) renderNode(buf *bytes.Buffer, n layout.NodeGeometry) {
	fmt.Fprintf(buf, `  <g class="node" data-id=%q>`+"\n", n.ID)
	switch n.Shape {
	case "circle":
		radius := n.Width / 2
		if n.Height < n.Width {
			radius = n.Height / 2
		}
		fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s"/>`+"\n",
			n.CenterX(), n.CenterY(), radius, r.nodeFill, r.nodeStroke)
	case "ellipse":
		fmt.Fprintf(buf, `    <ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s" stroke="%s"/>`+"\n",
			n.CenterX(), n.CenterY(), n.Width/2, n.Height/2, r.nodeFill, r.nodeStroke)
	default:
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s"/>`+"\n",
			n.X, n.Y, n.Width, n.Height, r.cornerRadius, r.nodeFill, r.nodeStroke)
	}
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="%.0f">%s</text>`+"\n",
		n.CenterX(), n.CenterY(), r.fontSize, html.EscapeString(n.Label))
	buf.WriteString("  </g>\n")
}

func (r *renderer) renderEdge(buf *bytes.Buffer, e layout.EdgeGeometry, style layout.EdgeStyle) {
	if len(e.Points) < 2 {
		return
	}

	var d string
	if style == layout.EdgeStyleCurved || e.SelfLoop {
		d = curvedPath(e.Points)
	} else {
		d = polylinePath(e.Points)
	}

	fmt.Fprintf(buf, `  <path class="edge" data-from=%q data-to=%q d="%s" fill="none" stroke="%s" stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n",
		e.From, e.To, d, r.edgeStroke)
}

// polylinePath emits straight segments through every point.
func polylinePath(points []layout.Point) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "M %.1f %.1f", points[0].X, points[0].Y)
	for _, p := range points[1:] {
		fmt.Fprintf(&buf, " L %.1f %.1f", p.X, p.Y)
	}
	return buf.String()
}

// curvedPath emits a smooth path treating the interior points as control
// points of quadratic segments, with midpoints as the on-curve joints.
func curvedPath(points []layout.Point) string {
	if len(points) == 2 {
		return polylinePath(points)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "M %.1f %.1f", points[0].X, points[0].Y)
	for i := 1; i < len(points)-1; i++ {
		ctrl := points[i]
		next := points[i+1]
		mid := layout.Point{X: (ctrl.X + next.X) / 2, Y: (ctrl.Y + next.Y) / 2}
		if i == len(points)-2 {
			mid = next
		}
		fmt.Fprintf(&buf, " Q %.1f %.1f %.1f %.1f", ctrl.X, ctrl.Y, mid.X, mid.Y)
	}
	return buf.String()
}
