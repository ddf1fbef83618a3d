package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderHistory formats recorded check runs, oldest first.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No recorded runs found. Use check --record to start one.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Check History") + "\n\n")

	t := newTable()
	t.AppendHeader(table.Row{"Date", "Commit", "Verdict", "Errors", "Warnings", "Modules", "Edges"})
	for i, e := range entries {
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		verdict := passStyle.Render("pass")
		if !e.Passed {
			verdict = failStyle.Render("fail")
		}

		errs := fmt.Sprintf("%d", e.Errors)
		if i > 0 {
			diff := e.Errors - entries[i-1].Errors
			if diff > 0 {
				errs += " " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				errs += " " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}

		t.AppendRow(table.Row{dimStyle.Render(date), faintStyle.Render(hash), verdict, errs, e.Warnings, e.Modules, e.Edges})
	}
	b.WriteString(indent(t.Render()))
	b.WriteString("\n\n")
	return b.String()
}
