package cli

import (
	"testing"

	"github.com/matzehuels/dagviz/pkg/layout"
)

func TestMergeConfig(t *testing.T) {
	file := layout.Config{
		RankDir:     layout.RankDirLR,
		NodeSpacing: 10,
		Margin:      5,
	}
	flags := layout.Config{
		RankDir:     layout.RankDirBT,
		NodeSpacing: 99,
		RankSpacing: 77,
		Margin:      1,
		EdgeStyle:   layout.EdgeStyleCurved,
		Sweeps:      2,
		Ordering:    layout.OrderingBarycentric,
	}

	set := map[string]bool{"rankdir": true, "sweeps": true}
	got := mergeConfig(file, flags, func(name string) bool { return set[name] })

	if got.RankDir != layout.RankDirBT {
		t.Errorf("RankDir = %q, want flag value %q", got.RankDir, layout.RankDirBT)
	}
	if got.Sweeps != 2 {
		t.Errorf("Sweeps = %d, want flag value 2", got.Sweeps)
	}
	if got.NodeSpacing != 10 || got.Margin != 5 {
		t.Errorf("unset flags overrode file values: %+v", got)
	}
	if got.RankSpacing != 0 || got.EdgeStyle != "" || got.Ordering != "" {
		t.Errorf("unset flags leaked into merged config: %+v", got)
	}
}

func TestMergeConfigNoFlagsKeepsFile(t *testing.T) {
	file := layout.Config{NodeSpacing: 42}

	got := mergeConfig(file, layout.Config{NodeSpacing: 7}, func(string) bool { return false })

	if got != file {
		t.Errorf("mergeConfig() = %+v, want file config %+v", got, file)
	}
}
