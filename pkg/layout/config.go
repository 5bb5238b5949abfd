package layout

import (
	"github.com/matzehuels/dagviz/pkg/errors"
	"github.com/matzehuels/dagviz/pkg/layout/ordering"
)

// RankDir controls the direction in which ranks are stacked.
type RankDir string

// Recognized rank directions.
const (
	RankDirTB RankDir = "TB" // top-down (default)
	RankDirBT RankDir = "BT" // bottom-up
	RankDirLR RankDir = "LR" // left-right
	RankDirRL RankDir = "RL" // right-left
)

// EdgeStyle controls how edge path points are produced.
type EdgeStyle string

// Recognized edge routing styles.
const (
	// EdgeStyleStraight routes each edge as a polyline through its virtual
	// node coordinates, clipped to the endpoint node boundaries.
	EdgeStyleStraight EdgeStyle = "straight"
	// EdgeStyleOrthogonal routes edges as axis-aligned right-angle segments.
	EdgeStyleOrthogonal EdgeStyle = "orthogonal"
	// EdgeStyleCurved produces the same anchor points as straight; renderers
	// interpolate a smooth curve through them (the virtual node coordinates
	// act as control points).
	EdgeStyleCurved EdgeStyle = "curved"
)

// Default configuration values. These match the defaults dagviz has always
// shipped for browser rendering and are part of the configuration contract.
const (
	DefaultNodeSpacing = 30.0
	DefaultRankSpacing = 50.0
	DefaultMargin      = 20.0

	// DefaultNodeWidth and DefaultNodeHeight size nodes whose attributes
	// carry no explicit dimensions.
	DefaultNodeWidth  = 150.0
	DefaultNodeHeight = 40.0
)

// Config is the immutable resolved set of layout directives. All optional
// directives are resolved into a fully-populated value by [Config.Resolve]
// before layout begins; the algorithmic passes never see defaults handling.
//
// The zero value resolves to the documented defaults, so
//
//	layout.Compute(g, layout.Config{})
//
// and
//
//	layout.Compute(g, layout.Default())
//
// produce identical geometry.
type Config struct {
	// RankDir is the stacking direction of ranks. Default TB.
	RankDir RankDir `json:"rank_dir,omitempty" bson:"rank_dir,omitempty" toml:"rank_dir"`

	// NodeSpacing is the gap between adjacent nodes within a rank.
	// Zero means the default (30); negative values are invalid.
	NodeSpacing float64 `json:"node_spacing,omitempty" bson:"node_spacing,omitempty" toml:"node_spacing"`

	// RankSpacing is the gap between adjacent ranks.
	// Zero means the default (50); negative values are invalid.
	RankSpacing float64 `json:"rank_spacing,omitempty" bson:"rank_spacing,omitempty" toml:"rank_spacing"`

	// Margin is the padding around the whole drawing.
	// Zero means the default (20); negative values are invalid.
	Margin float64 `json:"margin,omitempty" bson:"margin,omitempty" toml:"margin"`

	// EdgeStyle selects the routing style. Default straight.
	EdgeStyle EdgeStyle `json:"edge_style,omitempty" bson:"edge_style,omitempty" toml:"edge_style"`

	// Sweeps bounds the crossing-minimization passes. Zero means the
	// default (ordering.DefaultSweeps); negative values are invalid.
	Sweeps int `json:"sweeps,omitempty" bson:"sweeps,omitempty" toml:"sweeps"`

	// Ordering selects the crossing-minimization heuristic: "median"
	// (default) or "barycentric".
	Ordering string `json:"ordering,omitempty" bson:"ordering,omitempty" toml:"ordering"`

	// Orderer overrides the heuristic selected by Ordering. Runtime only.
	Orderer ordering.Orderer `json:"-" bson:"-" toml:"-"`
}

// Ordering algorithm names.
const (
	OrderingMedian      = "median"
	OrderingBarycentric = "barycentric"
)

// Default returns the fully-populated default configuration.
func Default() Config {
	cfg, _ := Config{}.Resolve()
	return cfg
}

// Resolve validates cfg and fills every omitted directive with its
// documented default, returning the immutable resolved configuration.
//
// Returns an INVALID_CONFIG error for unrecognized enum values, negative
// spacing or margin, or a negative sweep count. Zero values are treated as
// "omitted" and take the default.
func (c Config) Resolve() (Config, error) {
	switch c.RankDir {
	case "":
		c.RankDir = RankDirTB
	case RankDirTB, RankDirBT, RankDirLR, RankDirRL:
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unrecognized rank direction: %q", c.RankDir)
	}

	switch c.EdgeStyle {
	case "":
		c.EdgeStyle = EdgeStyleStraight
	case EdgeStyleStraight, EdgeStyleOrthogonal, EdgeStyleCurved:
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unrecognized edge style: %q", c.EdgeStyle)
	}

	switch c.Ordering {
	case "":
		c.Ordering = OrderingMedian
	case OrderingMedian, OrderingBarycentric:
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unrecognized ordering algorithm: %q", c.Ordering)
	}

	if c.NodeSpacing < 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "node spacing must not be negative: %v", c.NodeSpacing)
	}
	if c.RankSpacing < 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "rank spacing must not be negative: %v", c.RankSpacing)
	}
	if c.Margin < 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "margin must not be negative: %v", c.Margin)
	}
	if c.Sweeps < 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "sweep count must not be negative: %d", c.Sweeps)
	}

	if c.NodeSpacing == 0 {
		c.NodeSpacing = DefaultNodeSpacing
	}
	if c.RankSpacing == 0 {
		c.RankSpacing = DefaultRankSpacing
	}
	if c.Margin == 0 {
		c.Margin = DefaultMargin
	}
	if c.Sweeps == 0 {
		c.Sweeps = ordering.DefaultSweeps
	}

	return c, nil
}

// horizontal reports whether ranks advance along the x axis.
func (c Config) horizontal() bool {
	return c.RankDir == RankDirLR || c.RankDir == RankDirRL
}

// orderer returns the configured Orderer, constructing the heuristic
// selected by Ordering when no override is set.
func (c Config) orderer() ordering.Orderer {
	if c.Orderer != nil {
		return c.Orderer
	}
	if c.Ordering == OrderingBarycentric {
		return ordering.Barycentric{Sweeps: c.Sweeps}
	}
	return ordering.Median{Sweeps: c.Sweeps}
}
