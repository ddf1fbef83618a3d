package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
	"github.com/abdidvp/archguard/internal/domain/graph"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
)

const graphMaxRows = 15

// RenderGraph summarizes the module graph: layer sizes, the most coupled
// modules and every cycle.
func RenderGraph(g *graph.Graph, layers []string, cycles [][]string) string {
	if g == nil || g.ModuleCount() == 0 {
		return "\n  " + dimStyle.Render("No modules found.") + "\n\n"
	}

	var b strings.Builder

	// ── Header box ──
	title := headerStyle.Render("Module Graph")
	cycleLabel := passStyle.Render(fmt.Sprintf("%d cycles", len(cycles)))
	if len(cycles) > 0 {
		cycleLabel = failStyle.Render(fmt.Sprintf("%d cycles", len(cycles)))
	}
	stats := dimStyle.Render(fmt.Sprintf("%d modules  ·  %d edges  ·  ", g.ModuleCount(), g.EdgeCount())) + cycleLabel
	b.WriteString(boxStyle.Render(title + "\n\n" + stats))
	b.WriteString("\n\n")

	renderLayerTable(&b, g, layers)
	renderModuleTable(&b, g)
	renderCyclesSection(&b, cycles)

	b.WriteString("\n")
	return b.String()
}

func renderLayerTable(b *strings.Builder, g *graph.Graph, layers []string) {
	counts := g.LayerCounts()

	t := newTable()
	t.AppendHeader(table.Row{"Layer", "Modules"})
	for _, l := range append(append([]string(nil), layers...), domain.Unlayered) {
		n := counts[l]
		name := titleStyle.Render(l)
		if l == domain.Unlayered {
			name = dimStyle.Render(l)
		}
		if n == 0 && l != domain.Unlayered {
			name = warnStyle.Render(l)
		}
		t.AppendRow(table.Row{name, n})
	}
	b.WriteString(indent(t.Render()))
	b.WriteString("\n\n")
}

type moduleRow struct {
	mod     domain.Module
	in, out int
}

func renderModuleTable(b *strings.Builder, g *graph.Graph) {
	rows := make([]moduleRow, 0, g.ModuleCount())
	for _, m := range g.Modules() {
		rows = append(rows, moduleRow{
			mod: m,
			in:  len(g.Predecessors(m.ID)),
			out: len(g.Successors(m.ID)),
		})
	}

	// Sort: most coupled first, then alphabetical.
	sort.SliceStable(rows, func(i, j int) bool {
		ci, cj := rows[i].in+rows[i].out, rows[j].in+rows[j].out
		if ci != cj {
			return ci > cj
		}
		return rows[i].mod.ID < rows[j].mod.ID
	})

	shown := min(graphMaxRows, len(rows))

	t := newTable()
	t.AppendHeader(table.Row{"Module", "Layer", "Kind", "In", "Out"})
	for _, r := range rows[:shown] {
		kind := string(r.mod.Kind)
		if kind == "" {
			kind = "—"
		}
		t.AppendRow(table.Row{truncate(r.mod.ID, maxCellWidth), layerLabel(r.mod.Layer), dimStyle.Render(kind), r.in, r.out})
	}
	b.WriteString(indent(t.Render()))
	b.WriteString("\n")

	if remaining := len(rows) - shown; remaining > 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf("  (%d more modules)\n", remaining)))
	}
	b.WriteString("\n")
}

func layerLabel(layer string) string {
	if layer == domain.Unlayered {
		return dimStyle.Render(layer)
	}
	return lipgloss.NewStyle().Foreground(accent).Render(layer)
}

func renderCyclesSection(b *strings.Builder, cycles [][]string) {
	b.WriteString("  " + titleStyle.Render("Cycles") + "\n")
	if len(cycles) == 0 {
		b.WriteString("    " + passStyle.Render("(none)") + "\n")
		return
	}
	for _, cycle := range cycles {
		// Show as a → b → c → a
		parts := make([]string, len(cycle), len(cycle)+1)
		copy(parts, cycle)
		parts = append(parts, cycle[0])
		b.WriteString("    " + failStyle.Render(strings.Join(parts, " → ")) + "\n")
	}
}
