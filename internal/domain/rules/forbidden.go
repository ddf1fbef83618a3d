package rules

import (
	"fmt"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
)

func evalForbidden(ec *evalContext, r domain.Rule) ([]domain.Violation, error) {
	from, err := ec.engine.compileSelector(r.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := ec.engine.compileSelector(*r.To)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	if r.IsDirectOnly() {
		return directViolations(ec, r, from, to, nil, func(a, b domain.Module) string {
			return fmt.Sprintf("%s (%s) must not depend on %s (%s)", a.ID, a.Layer, b.ID, b.Layer)
		})
	}
	return pathViolations(ec, r, from, to, nil, func(path []string) string {
		return fmt.Sprintf("%s must not reach %s: %s",
			path[0], path[len(path)-1], strings.Join(path, " -> "))
	})
}

// directViolations reports every edge a -> b with a in from and b in to.
// Targets accepted by skip are ignored.
func directViolations(
	ec *evalContext,
	r domain.Rule,
	from, to *selector,
	skip *selector,
	message func(a, b domain.Module) string,
) ([]domain.Violation, error) {
	var out []domain.Violation
	for i, e := range ec.g.Edges() {
		if i%1024 == 0 {
			if err := ec.ctx.Err(); err != nil {
				return nil, err
			}
		}
		a, _ := ec.g.Module(e.From)
		b, _ := ec.g.Module(e.To)
		if !from.matches(a) || !to.matches(b) {
			continue
		}
		if skip != nil && skip.matches(b) {
			continue
		}
		out = append(out, newViolation(r, domain.EntityEdge, []string{a.ID, b.ID}, message(a, b)))
	}
	return out, nil
}

// pathViolations reports, for every from-module, each reachable to-module
// with the shortest path leading to it. Modules accepted by avoid are not
// traversed.
func pathViolations(
	ec *evalContext,
	r domain.Rule,
	from, to *selector,
	avoid *selector,
	message func(path []string) string,
) ([]domain.Violation, error) {
	var avoidFn func(string) bool
	if avoid != nil {
		avoidFn = func(id string) bool { return avoid.matchesID(ec.g, id) }
	}

	var out []domain.Violation
	for _, m := range ec.g.Modules() {
		if !from.matches(m) {
			continue
		}
		if err := ec.ctx.Err(); err != nil {
			return nil, err
		}
		for _, reach := range ec.g.ReachableFrom(m.ID, avoidFn) {
			if !to.matchesID(ec.g, reach.ID) {
				continue
			}
			entity := domain.EntityPath
			if len(reach.Path) == 2 {
				entity = domain.EntityEdge
			}
			out = append(out, newViolation(r, entity, reach.Path, message(reach.Path)))
		}
	}
	return out, nil
}

func newViolation(r domain.Rule, entity domain.EntityType, modules []string, msg string) domain.Violation {
	return domain.Violation{
		Rule:     r.Name,
		Kind:     r.Kind,
		Severity: r.EffectiveSeverity(),
		Entity:   entity,
		Modules:  modules,
		Message:  msg,
		Because:  r.Because,
	}
}
