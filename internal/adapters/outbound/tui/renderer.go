package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// maxCellWidth keeps long module paths from blowing up table layout.
const maxCellWidth = 60

// RenderReport formats a check report for the terminal. shown is the
// (possibly severity-filtered) report whose violations are listed; the
// verdict and summary always come from it unchanged.
func RenderReport(shown *domain.Report) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("archguard")
	subtitle := dimStyle.Render("Architecture Conformance")
	verdict := passStyle.Bold(true).Render("PASS")
	if !shown.Passed {
		verdict = failStyle.Bold(true).Render("FAIL")
	}
	stats := dimStyle.Render(fmt.Sprintf("%d modules  ·  %d edges", shown.Modules, shown.Edges))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict + "\n" + stats))
	b.WriteString("\n\n")

	// ── Summary ──
	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Violations"))
	b.WriteString("  ")
	b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", shown.Summary.Errors)))
	b.WriteString("  ")
	b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", shown.Summary.Warnings)))
	b.WriteString("\n\n")

	if len(shown.Violations) == 0 {
		if shown.Summary.Total > 0 {
			b.WriteString("  " + dimStyle.Render("All violations are below the display threshold.") + "\n")
		} else {
			b.WriteString("  " + passStyle.Render("No violations found.") + "\n")
		}
		b.WriteString("\n")
		return b.String()
	}

	// ── Table ──
	t := newTable()
	t.AppendHeader(table.Row{"Severity", "Rule", "Entity", "Message"})
	for _, v := range shown.Violations {
		t.AppendRow(table.Row{
			severityTag(v.Severity),
			v.Rule,
			truncate(v.EntityID(), maxCellWidth),
			v.Message,
		})
	}
	b.WriteString(indent(t.Render()))
	b.WriteString("\n")

	// ── Justifications ──
	if because := justifications(shown.Violations); len(because) > 0 {
		b.WriteString("\n  " + separatorLine + "\n\n")
		for _, line := range because {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n")
	return b.String()
}

// justifications lists each rule's because text once, in report order.
func justifications(vs []domain.Violation) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range vs {
		if v.Because == "" || seen[v.Rule] {
			continue
		}
		seen[v.Rule] = true
		out = append(out, titleStyle.Render(v.Rule)+"  "+hintStyle.Render(v.Because))
	}
	return out
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	return t
}

func severityTag(s domain.Severity) string {
	switch s {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn")
	default:
		return infoTagStyle.Render(string(s))
	}
}

func indent(block string) string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return "…" + s[len(s)-width+1:]
}
