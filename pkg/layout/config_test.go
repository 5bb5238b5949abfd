package layout

import (
	"testing"

	"github.com/matzehuels/dagviz/pkg/errors"
	"github.com/matzehuels/dagviz/pkg/layout/ordering"
)

func TestConfigResolveDefaults(t *testing.T) {
	cfg, err := Config{}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if cfg.RankDir != RankDirTB {
		t.Errorf("RankDir = %q, want %q", cfg.RankDir, RankDirTB)
	}
	if cfg.EdgeStyle != EdgeStyleStraight {
		t.Errorf("EdgeStyle = %q, want %q", cfg.EdgeStyle, EdgeStyleStraight)
	}
	if cfg.Ordering != OrderingMedian {
		t.Errorf("Ordering = %q, want %q", cfg.Ordering, OrderingMedian)
	}
	if cfg.NodeSpacing != DefaultNodeSpacing {
		t.Errorf("NodeSpacing = %v, want %v", cfg.NodeSpacing, DefaultNodeSpacing)
	}
	if cfg.RankSpacing != DefaultRankSpacing {
		t.Errorf("RankSpacing = %v, want %v", cfg.RankSpacing, DefaultRankSpacing)
	}
	if cfg.Margin != DefaultMargin {
		t.Errorf("Margin = %v, want %v", cfg.Margin, DefaultMargin)
	}
	if cfg.Sweeps != ordering.DefaultSweeps {
		t.Errorf("Sweeps = %d, want %d", cfg.Sweeps, ordering.DefaultSweeps)
	}
}

func TestConfigResolveKeepsExplicitValues(t *testing.T) {
	cfg, err := Config{
		RankDir:     RankDirLR,
		NodeSpacing: 12,
		RankSpacing: 80,
		Margin:      5,
		EdgeStyle:   EdgeStyleOrthogonal,
		Sweeps:      3,
		Ordering:    OrderingBarycentric,
	}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if cfg.RankDir != RankDirLR || cfg.NodeSpacing != 12 || cfg.RankSpacing != 80 ||
		cfg.Margin != 5 || cfg.EdgeStyle != EdgeStyleOrthogonal || cfg.Sweeps != 3 ||
		cfg.Ordering != OrderingBarycentric {
		t.Errorf("Resolve() rewrote explicit values: %+v", cfg)
	}
}

func TestConfigResolveRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad rank direction", Config{RankDir: "diagonal"}},
		{"bad edge style", Config{EdgeStyle: "zigzag"}},
		{"bad ordering", Config{Ordering: "random"}},
		{"negative node spacing", Config{NodeSpacing: -1}},
		{"negative rank spacing", Config{RankSpacing: -0.5}},
		{"negative margin", Config{Margin: -10}},
		{"negative sweeps", Config{Sweeps: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Resolve()
			if err == nil {
				t.Fatal("Resolve() succeeded, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestConfigOrderer(t *testing.T) {
	cfg, _ := Config{Ordering: OrderingBarycentric, Sweeps: 4}.Resolve()
	if _, ok := cfg.orderer().(ordering.Barycentric); !ok {
		t.Errorf("orderer() = %T, want ordering.Barycentric", cfg.orderer())
	}

	cfg, _ = Config{}.Resolve()
	if _, ok := cfg.orderer().(ordering.Median); !ok {
		t.Errorf("orderer() = %T, want ordering.Median", cfg.orderer())
	}

	override := ordering.Median{Sweeps: 1}
	cfg.Orderer = override
	if got := cfg.orderer(); got != ordering.Orderer(override) {
		t.Errorf("orderer() ignored the runtime override")
	}
}

func TestConfigHorizontal(t *testing.T) {
	for dir, want := range map[RankDir]bool{
		RankDirTB: false,
		RankDirBT: false,
		RankDirLR: true,
		RankDirRL: true,
	} {
		if got := (Config{RankDir: dir}).horizontal(); got != want {
			t.Errorf("horizontal(%s) = %v, want %v", dir, got, want)
		}
	}
}
