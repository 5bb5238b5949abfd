package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagviz/pkg/cache"
	"github.com/matzehuels/dagviz/pkg/graph"
	"github.com/matzehuels/dagviz/pkg/layout"
)

// layoutCommand creates the layout command for computing graph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flagCfg layout.Config
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a layered layout for a directed graph",
		Long: `Compute a layered layout for a directed graph.

The layout command takes a graph.json file and computes node positions and
edge routes. The output is a geometry.json file that can be rendered to SVG
or HTML using the 'render' command.

The same graph and configuration always produce identical geometry, so
results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveLayoutConfig(cmd, flagCfg)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], cfg, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.geometry.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	registerLayoutFlags(cmd, &flagCfg)

	return cmd
}

// registerLayoutFlags binds the layout configuration flags shared by the
// layout, render, view, and serve commands.
func registerLayoutFlags(cmd *cobra.Command, cfg *layout.Config) {
	cmd.Flags().StringVar((*string)(&cfg.RankDir), "rankdir", "", "rank direction: TB (default), BT, LR, RL")
	cmd.Flags().Float64Var(&cfg.NodeSpacing, "node-spacing", 0, "gap between nodes within a rank (default 30)")
	cmd.Flags().Float64Var(&cfg.RankSpacing, "rank-spacing", 0, "gap between ranks (default 50)")
	cmd.Flags().Float64Var(&cfg.Margin, "margin", 0, "padding around the drawing (default 20)")
	cmd.Flags().StringVar((*string)(&cfg.EdgeStyle), "edge-style", "", "edge routing: straight (default), orthogonal, curved")
	cmd.Flags().StringVar(&cfg.Ordering, "ordering", "", "crossing minimization: median (default), barycentric")
	cmd.Flags().IntVar(&cfg.Sweeps, "sweeps", 0, "maximum ordering sweeps (default 8)")
}

// resolveLayoutConfig merges the user config file with explicitly set flags
// and validates the result.
func resolveLayoutConfig(cmd *cobra.Command, flagCfg layout.Config) (layout.Config, error) {
	file, err := loadFileConfig()
	if err != nil {
		return layout.Config{}, err
	}
	merged := mergeConfig(file.Layout, flagCfg, cmd.Flags().Changed)
	return merged.Resolve()
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, cfg layout.Config, output string, noCache bool) error {
	g, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	geo, cacheHit, err := c.computeCached(ctx, g, cfg, noCache)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if spinner.Cancelled() {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".geometry.json"
	}

	if err := layout.WriteGeometryFile(geo, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(g.NodeCount(), g.EdgeCount(), cacheHit)
	printNewline()
	printNextStep("Render", "dagviz render "+outputPath)

	return nil
}

// computeCached computes a layout, consulting the local cache first.
// The boolean reports whether the geometry came from cache.
func (c *CLI) computeCached(ctx context.Context, g *graph.Graph, cfg layout.Config, noCache bool) (layout.Geometry, bool, error) {
	store := newCache(noCache)
	defer store.Close()

	key := cache.Key("layout", g, cfg)
	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		geo, err := layout.ReadGeometry(bytes.NewReader(data))
		if err == nil {
			return geo, true, nil
		}
		c.Logger.Debug("discarding unreadable cached layout", "key", key, "err", err)
	}

	p := newProgress(c.Logger)
	geo, err := layout.Compute(g, cfg)
	if err != nil {
		return layout.Geometry{}, false, err
	}
	p.done(fmt.Sprintf("Computed layout for %d nodes", g.NodeCount()))

	if data, err := layout.MarshalGeometry(geo); err == nil {
		if err := store.Set(ctx, key, data, 0); err != nil {
			c.Logger.Debug("cache write failed", "key", key, "err", err)
		}
	}

	return geo, false, nil
}
