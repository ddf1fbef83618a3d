package rules

import (
	"github.com/abdidvp/archguard/internal/domain"
	"github.com/abdidvp/archguard/internal/domain/graph"
	"github.com/abdidvp/archguard/internal/domain/pattern"
)

const regexPrefix = "regex:"

// selector is a compiled domain.Selector. A nil clause always holds.
type selector struct {
	layers  map[string]bool
	path    pattern.Matcher
	pathNot pattern.Matcher
}

func (e *Engine) compileSelector(s domain.Selector) (*selector, error) {
	sel := &selector{}
	if len(s.Layers) > 0 {
		sel.layers = make(map[string]bool, len(s.Layers))
		for _, l := range s.Layers {
			sel.layers[l] = true
		}
	}
	if s.Path != "" {
		m, err := e.compiler.Compile(s.Path)
		if err != nil {
			return nil, err
		}
		sel.path = m
	}
	if s.PathNot != "" {
		m, err := e.compiler.Compile(s.PathNot)
		if err != nil {
			return nil, err
		}
		sel.pathNot = m
	}
	return sel, nil
}

// matches applies every clause. Layer clauses only admit listed tags, so
// unlayered modules are excluded unless "unlayered" is listed.
func (s *selector) matches(m domain.Module) bool {
	if s.layers != nil && !s.layers[m.Layer] {
		return false
	}
	if s.path != nil && !s.path.Match(m.ID) {
		return false
	}
	if s.pathNot != nil && s.pathNot.Match(m.ID) {
		return false
	}
	return true
}

func (s *selector) matchesID(g *graph.Graph, id string) bool {
	m, ok := g.Module(id)
	return ok && s.matches(m)
}
