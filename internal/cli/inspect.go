package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dagviz/pkg/graph"
	"github.com/matzehuels/dagviz/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listRankStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
)

// inspectCommand creates the inspect command for browsing a layout in the
// terminal.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		noCache bool
		flagCfg layout.Config
	)

	cmd := &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Browse a computed layout rank by rank in the terminal",
		Long: `Browse a computed layout rank by rank in the terminal.

The inspect command computes the layout and opens an interactive browser
showing the nodes of every rank in their final left-to-right order, with the
computed coordinates of the selected node.

Keys: up/down or j/k to move, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveLayoutConfig(cmd, flagCfg)
			if err != nil {
				return err
			}
			return c.runInspect(cmd, args[0], cfg, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	registerLayoutFlags(cmd, &flagCfg)

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, input string, cfg layout.Config, noCache bool) error {
	g, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	geo, _, err := c.computeCached(cmd.Context(), g, cfg, noCache)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	if len(geo.Nodes) == 0 {
		printInfo("Graph is empty")
		return nil
	}

	model := newLayoutModel(geo)
	program := tea.NewProgram(model, tea.WithContext(cmd.Context()))
	_, err = program.Run()
	return err
}

// =============================================================================
// LayoutModel - Interactive layout browser
// =============================================================================

// inspectRow is one selectable line of the browser.
type inspectRow struct {
	node      layout.NodeGeometry
	rankStart bool
}

// LayoutModel is the bubbletea model for browsing a computed layout.
type LayoutModel struct {
	geometry layout.Geometry
	rows     []inspectRow
	cursor   int
	height   int
	offset   int
}

// newLayoutModel builds the browser rows sorted by rank, then order.
func newLayoutModel(geo layout.Geometry) LayoutModel {
	nodes := make([]layout.NodeGeometry, len(geo.Nodes))
	copy(nodes, geo.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Rank != nodes[j].Rank {
			return nodes[i].Rank < nodes[j].Rank
		}
		return nodes[i].Order < nodes[j].Order
	})

	rows := make([]inspectRow, len(nodes))
	for i, n := range nodes {
		rows[i] = inspectRow{
			node:      n,
			rankStart: i == 0 || nodes[i-1].Rank != n.Rank,
		}
	}

	return LayoutModel{
		geometry: geo,
		rows:     rows,
		height:   15,
	}
}

func (m LayoutModel) Init() tea.Cmd {
	return nil
}

func (m LayoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		if msg.Height > 8 {
			m.height = msg.Height - 8
		}
	}
	return m, nil
}

func (m LayoutModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Layout  %d nodes  canvas %.0f x %.0f",
		len(m.rows), m.geometry.Width, m.geometry.Height)))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		if row.rankStart {
			b.WriteString(listRankStyle.Render(fmt.Sprintf("rank %d", row.node.Rank)))
			b.WriteString("\n")
		}

		label := fmt.Sprintf("  %s", row.node.ID)
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("> " + row.node.ID))
		} else {
			b.WriteString(listNormalStyle.Render(label))
		}
		b.WriteString("\n")
	}

	sel := m.rows[m.cursor].node
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("order %d  x %.1f  y %.1f  %gx%g",
		sel.Order, sel.X, sel.Y, sel.Width, sel.Height)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("j/k move · q quit"))
	b.WriteString("\n")

	return b.String()
}
