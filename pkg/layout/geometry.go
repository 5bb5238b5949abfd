package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Point is a single 2D coordinate in the final drawing space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// NodeGeometry is the finalized placement of one caller-supplied node.
// X and Y locate the top-left corner of the node's bounding box.
type NodeGeometry struct {
	ID     string  `json:"id" bson:"id"`
	Label  string  `json:"label,omitempty" bson:"label,omitempty"`
	Shape  string  `json:"shape,omitempty" bson:"shape,omitempty"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Rank   int     `json:"rank" bson:"rank"`
	Order  int     `json:"order" bson:"order"`
}

// CenterX returns the horizontal center of the node.
func (n NodeGeometry) CenterX() float64 { return n.X + n.Width/2 }

// CenterY returns the vertical center of the node.
func (n NodeGeometry) CenterY() float64 { return n.Y + n.Height/2 }

// EdgeGeometry is the finalized route of one caller-supplied edge.
//
// From and To are always the caller-declared endpoints and Points runs from
// From to To, regardless of whether cycle breaking internally reversed the
// edge; renderers can therefore place the arrowhead at the last point.
type EdgeGeometry struct {
	From     string  `json:"from" bson:"from"`
	To       string  `json:"to" bson:"to"`
	Points   []Point `json:"points" bson:"points"`
	Reversed bool    `json:"reversed,omitempty" bson:"reversed,omitempty"`
	SelfLoop bool    `json:"self_loop,omitempty" bson:"self_loop,omitempty"`
}

// Geometry is the terminal artifact of a layout run: finalized node
// placements, edge routes, and the overall canvas size. It is exclusively
// owned by the caller once Compute returns; virtual nodes never appear in it.
type Geometry struct {
	Nodes  []NodeGeometry `json:"nodes" bson:"nodes"`
	Edges  []EdgeGeometry `json:"edges" bson:"edges"`
	Width  float64        `json:"width" bson:"width"`
	Height float64        `json:"height" bson:"height"`

	// Config records the resolved configuration the geometry was computed
	// with, so renderers can honor the requested edge style.
	Config Config `json:"config" bson:"config"`
}

// Node returns the geometry for the node with the given ID and true, or a
// zero value and false if the node is not part of the layout.
func (g Geometry) Node(id string) (NodeGeometry, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeGeometry{}, false
}

// =============================================================================
// Geometry Serialization API
// =============================================================================

// MarshalGeometry converts a Geometry to indented JSON bytes.
func MarshalGeometry(g Geometry) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGeometryTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGeometryFile writes a Geometry to a JSON file.
// The file is created with 0644 permissions.
func WriteGeometryFile(g Geometry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGeometryTo(g, f)
}

// WriteGeometry writes a Geometry as JSON to an io.Writer.
func WriteGeometry(g Geometry, w io.Writer) error {
	return writeGeometryTo(g, w)
}

// ReadGeometryFile reads a JSON file and returns the decoded Geometry.
func ReadGeometryFile(path string) (Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return Geometry{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGeometry(f)
}

// ReadGeometry decodes a JSON geometry from an io.Reader.
func ReadGeometry(r io.Reader) (Geometry, error) {
	var g Geometry
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Geometry{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

func writeGeometryTo(g Geometry, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
