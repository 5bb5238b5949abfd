package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagviz/pkg/graph"
	"github.com/matzehuels/dagviz/pkg/layout"
	"github.com/matzehuels/dagviz/pkg/render/dot"
	"github.com/matzehuels/dagviz/pkg/render/html"
	"github.com/matzehuels/dagviz/pkg/render/svg"
)

// Supported render formats.
const (
	formatSVG  = "svg"
	formatHTML = "html"
	formatDOT  = "dot"
	formatPNG  = "png"
)

// renderCommand creates the render command for producing visual output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format      string
		output      string
		title       string
		interactive bool
		noCache     bool
		flagCfg     layout.Config
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json|geometry.json]",
		Short: "Render a graph or a computed geometry to a visual format",
		Long: `Render a graph or a computed geometry to a visual format.

Accepts either a graph.json (layout is computed first, using the cache) or a
*.geometry.json file produced by 'layout'.

Formats:
  svg   standalone SVG drawing (default)
  html  self-contained page with hover highlighting of parents and children
  dot   Graphviz DOT export of the graph
  png   PNG produced by the embedded Graphviz engine from the DOT export

The dot and png formats require a graph.json input since they draw from the
graph itself, not from a computed geometry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			cfg, err := resolveLayoutConfig(cmd, flagCfg)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), renderParams{
				input:       args[0],
				format:      format,
				output:      output,
				title:       title,
				interactive: interactive,
				noCache:     noCache,
				cfg:         cfg,
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg (default), html, dot, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVar(&title, "title", "", "document title (html)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "embed hover highlighting (svg)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	registerLayoutFlags(cmd, &flagCfg)

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case formatSVG, formatHTML, formatDOT, formatPNG:
		return nil
	}
	return fmt.Errorf("unsupported format %q (choose svg, html, dot, or png)", format)
}

type renderParams struct {
	input       string
	format      string
	output      string
	title       string
	interactive bool
	noCache     bool
	cfg         layout.Config
}

// runRender produces the requested artifact and writes it to disk.
func (c *CLI) runRender(ctx context.Context, p renderParams) error {
	data, cacheHit, counts, err := c.renderArtifact(ctx, p)
	if err != nil {
		return err
	}

	outputPath := p.output
	if outputPath == "" {
		base := strings.TrimSuffix(p.input, filepath.Ext(p.input))
		base = strings.TrimSuffix(base, ".geometry")
		outputPath = base + "." + p.format
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Rendered %s", p.format)
	printFile(outputPath)
	printStats(counts[0], counts[1], cacheHit)
	return nil
}

// renderArtifact dispatches to the right renderer for the format.
func (c *CLI) renderArtifact(ctx context.Context, p renderParams) (data []byte, cacheHit bool, counts [2]int, err error) {
	if p.format == formatDOT || p.format == formatPNG {
		g, err := graph.ReadFile(p.input)
		if err != nil {
			return nil, false, counts, fmt.Errorf("load graph %s: %w", p.input, err)
		}
		counts = [2]int{g.NodeCount(), g.EdgeCount()}
		d := dot.ToDOT(g, p.cfg)
		if p.format == formatDOT {
			return []byte(d), false, counts, nil
		}
		png, err := dot.RenderPNG(ctx, d)
		if err != nil {
			return nil, false, counts, fmt.Errorf("render png: %w", err)
		}
		return png, false, counts, nil
	}

	geo, cacheHit, err := c.loadOrComputeGeometry(ctx, p)
	if err != nil {
		return nil, false, counts, err
	}
	counts = [2]int{len(geo.Nodes), len(geo.Edges)}

	switch p.format {
	case formatHTML:
		data, err = html.Render(geo, p.title)
		if err != nil {
			return nil, false, counts, fmt.Errorf("render html: %w", err)
		}
	default:
		var opts []svg.Option
		if p.interactive {
			opts = append(opts, svg.WithInteractive())
		}
		data = svg.Render(geo, opts...)
	}
	return data, cacheHit, counts, nil
}

// loadOrComputeGeometry reads a precomputed geometry file or computes the
// layout from a graph file, depending on the input name.
func (c *CLI) loadOrComputeGeometry(ctx context.Context, p renderParams) (layout.Geometry, bool, error) {
	if strings.HasSuffix(p.input, ".geometry.json") {
		geo, err := layout.ReadGeometryFile(p.input)
		if err != nil {
			return layout.Geometry{}, false, fmt.Errorf("load geometry %s: %w", p.input, err)
		}
		return geo, false, nil
	}

	g, err := graph.ReadFile(p.input)
	if err != nil {
		return layout.Geometry{}, false, fmt.Errorf("load graph %s: %w", p.input, err)
	}
	return c.computeCached(ctx, g, p.cfg, p.noCache)
}
