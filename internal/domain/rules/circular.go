package rules

import (
	"fmt"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
)

// evalCircular reports one violation per detected cycle. A non-empty from
// selector keeps only cycles that touch a selected module.
func evalCircular(ec *evalContext, r domain.Rule) ([]domain.Violation, error) {
	from, err := ec.engine.compileSelector(r.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	filter := !r.From.IsEmpty()

	var out []domain.Violation
	for _, cycle := range ec.findCycles() {
		if filter && !touches(ec, from, cycle) {
			continue
		}
		closed := append(append([]string(nil), cycle...), cycle[0])
		msg := "circular dependency: " + strings.Join(closed, " -> ")
		out = append(out, newViolation(r, domain.EntityCycle, append([]string(nil), cycle...), msg))
	}
	return out, nil
}

func touches(ec *evalContext, sel *selector, cycle []string) bool {
	for _, id := range cycle {
		if sel.matchesID(ec.g, id) {
			return true
		}
	}
	return false
}
