package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dagviz/pkg/graph"
	"github.com/matzehuels/dagviz/pkg/layout"
	"github.com/matzehuels/dagviz/pkg/render/html"
)

// viewCommand creates the view command for opening a graph in the browser.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		title   string
		noCache bool
		flagCfg layout.Config
	)

	cmd := &cobra.Command{
		Use:   "view [graph.json]",
		Short: "Lay out a graph and open it in the browser",
		Long: `Lay out a graph and open it in the browser.

The view command computes the layout, renders an interactive HTML page to a
temporary file, and opens it with the system browser. Hovering a node
highlights its parents and children.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveLayoutConfig(cmd, flagCfg)
			if err != nil {
				return err
			}
			return c.runView(cmd.Context(), args[0], title, cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "document title")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	registerLayoutFlags(cmd, &flagCfg)

	return cmd
}

// runView renders the page to a temp file and launches the browser.
func (c *CLI) runView(ctx context.Context, input, title string, cfg layout.Config, noCache bool) error {
	g, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	if title == "" {
		title = g.Name
	}

	geo, _, err := c.computeCached(ctx, g, cfg, noCache)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	page, err := html.Render(geo, title)
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	path := filepath.Join(os.TempDir(), "dagviz-"+uuid.NewString()+".html")
	if err := os.WriteFile(path, page, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Opening in browser")
	printFile(path)

	if err := openBrowser(path); err != nil {
		printWarning("could not launch browser: %v", err)
		printDetail("open the file manually")
	}
	return nil
}

// openBrowser launches the platform's URL opener for the given path.
func openBrowser(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
