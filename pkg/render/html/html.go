// Package html renders computed layout geometry as a self-contained HTML
// page. The page embeds the SVG drawing plus a small script that highlights
// a node's parents and children on hover.
package html

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/matzehuels/dagviz/pkg/layout"
	"github.com/matzehuels/dagviz/pkg/observability"
	"github.com/matzehuels/dagviz/pkg/render/svg"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { margin: 0; display: flex; justify-content: center; align-items: center; min-height: 100vh; background: #f7f7f9; font-family: sans-serif; }
  .canvas { background: white; border-radius: 8px; box-shadow: 0 1px 4px rgba(0,0,0,0.12); padding: 16px; }
  .node rect, .node circle, .node ellipse { transition: stroke-width 0.15s ease, fill 0.15s ease; cursor: pointer; }
  .node.hover rect, .node.hover circle, .node.hover ellipse { stroke-width: 2.5; }
  .node.parent rect, .node.parent circle, .node.parent ellipse { fill: #dbeafe; }
  .node.child rect, .node.child circle, .node.child ellipse { fill: #dcfce7; }
  .edge { transition: stroke-width 0.15s ease; }
  .edge.highlight { stroke-width: 3; }
</style>
</head>
<body>
<div class="canvas">
{{.SVG}}
</div>
<script>
const parents = {{.Parents}};
const children = {{.Children}};

function mark(list, cls) {
  (list || []).forEach(id => {
    const el = document.querySelector('.node[data-id="' + CSS.escape(id) + '"]');
    if (el) el.classList.add(cls);
  });
}

function clearMarks() {
  document.querySelectorAll('.node').forEach(el => el.classList.remove('hover', 'parent', 'child'));
  document.querySelectorAll('.edge').forEach(el => el.classList.remove('highlight'));
}

document.querySelectorAll('.node').forEach(el => {
  const id = el.dataset.id;
  el.addEventListener('mouseenter', () => {
    clearMarks();
    el.classList.add('hover');
    mark(parents[id], 'parent');
    mark(children[id], 'child');
    document.querySelectorAll('.edge').forEach(e => {
      e.classList.toggle('highlight', e.dataset.from === id || e.dataset.to === id);
    });
  });
  el.addEventListener('mouseleave', clearMarks);
});
</script>
</body>
</html>
`

var page = template.Must(template.New("page").Parse(pageTemplate))

// Render produces a standalone HTML page for the geometry. The title is
// used for the document title; an empty title falls back to "dagviz".
func Render(geo layout.Geometry, title string, opts ...svg.Option) ([]byte, error) {
	observability.Layout().OnRenderStart("html")
	start := time.Now()

	if title == "" {
		title = "dagviz"
	}

	parents, children := adjacency(geo)
	parentsJSON, err := json.Marshal(parents)
	if err != nil {
		return nil, fmt.Errorf("encode parent map: %w", err)
	}
	childrenJSON, err := json.Marshal(children)
	if err != nil {
		return nil, fmt.Errorf("encode child map: %w", err)
	}

	var buf bytes.Buffer
	err = page.Execute(&buf, struct {
		Title    string
		SVG      template.HTML
		Parents  template.JS
		Children template.JS
	}{
		Title:    title,
		SVG:      template.HTML(svg.Render(geo, opts...)),
		Parents:  template.JS(parentsJSON),
		Children: template.JS(childrenJSON),
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}

	out := buf.Bytes()
	observability.Layout().OnRenderComplete("html", len(out), time.Since(start))
	return out, nil
}

// adjacency builds the hover-highlight maps from the routed edges, using
// the caller-declared edge directions.
func adjacency(geo layout.Geometry) (parents, children map[string][]string) {
	parents = make(map[string][]string)
	children = make(map[string][]string)
	for _, e := range geo.Edges {
		if e.SelfLoop {
			continue
		}
		children[e.From] = append(children[e.From], e.To)
		parents[e.To] = append(parents[e.To], e.From)
	}
	return parents, children
}
