package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dagviz/pkg/layout"
)

// fileConfig is the schema of ~/.config/dagviz/config.toml. Every field is
// optional; values from the file act as defaults that command-line flags
// override.
type fileConfig struct {
	Layout layout.Config `toml:"layout"`
}

// loadFileConfig reads the user configuration file if it exists.
// A missing file is not an error; a malformed one is.
func loadFileConfig() (fileConfig, error) {
	dir, err := configDir()
	if err != nil {
		return fileConfig{}, nil
	}
	path := filepath.Join(dir, "config.toml")

	var cfg fileConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// mergeConfig layers flag values over the file configuration. Only flags
// the user actually set override the file; everything else falls through
// to the file value or, ultimately, the built-in default.
func mergeConfig(file, flags layout.Config, set func(name string) bool) layout.Config {
	out := file
	if set("rankdir") {
		out.RankDir = flags.RankDir
	}
	if set("node-spacing") {
		out.NodeSpacing = flags.NodeSpacing
	}
	if set("rank-spacing") {
		out.RankSpacing = flags.RankSpacing
	}
	if set("margin") {
		out.Margin = flags.Margin
	}
	if set("edge-style") {
		out.EdgeStyle = flags.EdgeStyle
	}
	if set("sweeps") {
		out.Sweeps = flags.Sweeps
	}
	if set("ordering") {
		out.Ordering = flags.Ordering
	}
	return out
}
