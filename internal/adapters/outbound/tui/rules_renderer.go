package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/archguard/internal/application"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderRules lists the effective rules and whether each one can run.
func RenderRules(source string, layers []string, statuses []application.RuleStatus) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Rules") + "  " + dimStyle.Render(source) + "\n")
	if len(layers) > 0 {
		b.WriteString("  " + dimStyle.Render("layers: "+strings.Join(layers, ", ")) + "\n")
	}
	b.WriteString("\n")

	if len(statuses) == 0 {
		b.WriteString("  " + dimStyle.Render("No rules configured.") + "\n\n")
		return b.String()
	}

	invalid := 0
	t := newTable()
	t.AppendHeader(table.Row{"#", "Name", "Kind", "Severity", "Scope", "Status"})
	for _, s := range statuses {
		status := passStyle.Render("ok")
		if !s.Valid {
			invalid++
			status = failStyle.Render("invalid")
		}
		t.AppendRow(table.Row{
			s.Index + 1,
			s.Rule.Name,
			string(s.Rule.Kind),
			severityTag(s.Rule.EffectiveSeverity()),
			scope(s),
			status,
		})
	}
	b.WriteString(indent(t.Render()))
	b.WriteString("\n")

	for _, s := range statuses {
		for _, note := range s.Notes {
			b.WriteString("\n  " + warnStyle.Render("!") + " " + s.Rule.Name + ": " + hintStyle.Render(note))
		}
	}

	if invalid > 0 {
		b.WriteString("\n  " + failStyle.Render(fmt.Sprintf("%d invalid rules", invalid)) + "  " +
			hintStyle.Render("reported as warnings during check") + "\n")
		for _, s := range statuses {
			if !s.Valid {
				b.WriteString("    " + warnStyle.Render("●") + " " + s.Error + "\n")
			}
		}
	}

	b.WriteString("\n")
	return b.String()
}

func scope(s application.RuleStatus) string {
	r := s.Rule
	parts := []string{"from " + r.From.String()}
	if r.To != nil {
		parts = append(parts, "to "+r.To.String())
	}
	if r.Via != nil {
		parts = append(parts, "via "+r.Via.String())
	}
	if r.TargetKind != "" {
		parts = append(parts, "kind "+string(r.TargetKind))
	}
	return truncate(strings.Join(parts, "; "), maxCellWidth)
}
