// Package report merges rule results into a deterministic report.
package report

import (
	"sort"

	"github.com/abdidvp/archguard/internal/domain"
)

// Aggregate concatenates violation sets, drops exact duplicates, sorts by
// severity (errors first), rule name, entity and message, and computes the
// verdict. The report passes iff it holds no error violation.
func Aggregate(sets ...[]domain.Violation) *domain.Report {
	seen := make(map[string]bool)
	all := make([]domain.Violation, 0)
	for _, set := range sets {
		for _, v := range set {
			k := v.Key()
			if seen[k] {
				continue
			}
			seen[k] = true
			all = append(all, v)
		}
	}

	Sort(all)

	r := &domain.Report{Violations: all}
	r.Summary = summarize(all)
	r.Passed = r.Summary.Errors == 0
	return r
}

// Sort orders violations in report order.
func Sort(vs []domain.Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		if ea, eb := a.EntityID(), b.EntityID(); ea != eb {
			return ea < eb
		}
		if a.Message != b.Message {
			return a.Message < b.Message
		}
		return a.Key() < b.Key()
	})
}

// Filter returns a copy of r holding only violations at or above min.
// Passed and the summary still describe the full report.
func Filter(r *domain.Report, min domain.Severity) *domain.Report {
	out := *r
	out.Violations = make([]domain.Violation, 0, len(r.Violations))
	for _, v := range r.Violations {
		if v.Severity.Rank() >= min.Rank() {
			out.Violations = append(out.Violations, v)
		}
	}
	return &out
}

func summarize(vs []domain.Violation) domain.Summary {
	var s domain.Summary
	for _, v := range vs {
		switch v.Severity {
		case domain.SeverityError:
			s.Errors++
		case domain.SeverityWarning:
			s.Warnings++
		}
	}
	s.Total = len(vs)
	return s
}
