package rules

import (
	"fmt"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
)

// evalReachThrough enforces that from-modules reach to-modules only through
// via-modules. Direct mode flags edges from -> to; transitive mode flags
// every path from -> to that avoids all via-modules.
func evalReachThrough(ec *evalContext, r domain.Rule) ([]domain.Violation, error) {
	from, err := ec.engine.compileSelector(r.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := ec.engine.compileSelector(*r.To)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	via, err := ec.engine.compileSelector(*r.Via)
	if err != nil {
		return nil, fmt.Errorf("via: %w", err)
	}
	viaDesc := r.Via.String()

	if r.IsDirectOnly() {
		return directViolations(ec, r, from, to, via, func(a, b domain.Module) string {
			return fmt.Sprintf("%s depends on %s directly instead of going through %s", a.ID, b.ID, viaDesc)
		})
	}
	return pathViolations(ec, r, from, to, via, func(path []string) string {
		return fmt.Sprintf("%s reaches %s without going through %s: %s",
			path[0], path[len(path)-1], viaDesc, strings.Join(path, " -> "))
	})
}
