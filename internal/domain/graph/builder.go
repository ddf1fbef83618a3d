package graph

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
	"github.com/abdidvp/archguard/internal/domain/pattern"
)

// Option configures Build.
type Option func(*builder)

// WithAliases rewrites identifiers by longest matching prefix, so that
// {"@/": "src/"} turns "@/domain/user" into "src/domain/user".
func WithAliases(aliases map[string]string) Option {
	return func(b *builder) {
		b.aliasKeys = b.aliasKeys[:0]
		b.aliases = aliases
		for k := range aliases {
			b.aliasKeys = append(b.aliasKeys, k)
		}
		// Longest prefix first; ties broken lexically for determinism.
		sort.Slice(b.aliasKeys, func(i, j int) bool {
			if len(b.aliasKeys[i]) != len(b.aliasKeys[j]) {
				return len(b.aliasKeys[i]) > len(b.aliasKeys[j])
			}
			return b.aliasKeys[i] < b.aliasKeys[j]
		})
	}
}

// WithIndexCollapse strips known source extensions and a trailing "/index",
// merging a directory and its index file into one module.
func WithIndexCollapse() Option {
	return func(b *builder) { b.collapseIndex = true }
}

// WithDeclarations adds declared modules and records their kinds.
func WithDeclarations(decls []domain.Declaration) Option {
	return func(b *builder) { b.decls = decls }
}

// WithCompiler sets the pattern compiler used for layer patterns.
func WithCompiler(c *pattern.Compiler) Option {
	return func(b *builder) { b.compiler = c }
}

type builder struct {
	aliases       map[string]string
	aliasKeys     []string
	collapseIndex bool
	decls         []domain.Declaration
	compiler      *pattern.Compiler
}

type compiledLayer struct {
	name     string
	matchers []pattern.Matcher
}

// Build normalizes raw edges into a graph and tags every module with its
// layer. Layers are tried in order and the first matching pattern wins;
// modules matching none are tagged domain.Unlayered. Self-edges are dropped.
// An endpoint that is blank, or normalizes to nothing, yields a
// *domain.MalformedEdgeError.
func Build(raw []domain.RawEdge, layers []domain.LayerDef, opts ...Option) (*Graph, error) {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}

	compiled, err := b.compileLayers(layers)
	if err != nil {
		return nil, err
	}

	g := &Graph{
		modules: make(map[string]domain.Module),
		succ:    make(map[string][]string),
		pred:    make(map[string][]string),
	}
	seenEdge := make(map[domain.Edge]bool)

	for i, e := range raw {
		from := b.normalize(e.From)
		to := b.normalize(e.To)
		if from == "" || to == "" {
			return nil, &domain.MalformedEdgeError{Index: i, Edge: e}
		}
		g.addModule(from)
		g.addModule(to)
		if from == to {
			continue
		}
		edge := domain.Edge{From: from, To: to}
		if seenEdge[edge] {
			continue
		}
		seenEdge[edge] = true
		g.edges = append(g.edges, edge)
		g.succ[from] = append(g.succ[from], to)
		g.pred[to] = append(g.pred[to], from)
	}

	for _, d := range b.decls {
		id := b.normalize(d.ID)
		if id == "" {
			continue
		}
		g.addModule(id)
		m := g.modules[id]
		if m.Kind == "" || m.Kind == domain.KindFile {
			m.Kind = d.Kind
		}
		g.modules[id] = m
	}

	for id, m := range g.modules {
		m.Layer = assignLayer(id, compiled)
		g.modules[id] = m
	}

	g.ids = sortedKeys(g.modules)
	for id := range g.succ {
		sort.Strings(g.succ[id])
	}
	for id := range g.pred {
		sort.Strings(g.pred[id])
	}
	return g, nil
}

func (g *Graph) addModule(id string) {
	if _, ok := g.modules[id]; !ok {
		g.modules[id] = domain.Module{ID: id}
	}
}

func (b *builder) compileLayers(layers []domain.LayerDef) ([]compiledLayer, error) {
	compile := pattern.Compile
	if b.compiler != nil {
		compile = b.compiler.Compile
	}
	out := make([]compiledLayer, 0, len(layers))
	for _, l := range layers {
		cl := compiledLayer{name: l.Name}
		for _, p := range l.Patterns {
			m, err := compile(p)
			if err != nil {
				return nil, fmt.Errorf("layer %q: %w", l.Name, err)
			}
			cl.matchers = append(cl.matchers, m)
		}
		out = append(out, cl)
	}
	return out, nil
}

func assignLayer(id string, layers []compiledLayer) string {
	for _, l := range layers {
		for _, m := range l.matchers {
			if m.Match(id) {
				return l.name
			}
		}
	}
	return domain.Unlayered
}

// normalize canonicalizes an identifier. Surrounding whitespace, a leading
// "./" and backslash separators never distinguish modules. It is
// deterministic and idempotent for a fixed option set.
func (b *builder) normalize(id string) string {
	id = strings.TrimSpace(id)
	id = strings.ReplaceAll(id, "\\", "/")
	id = strings.TrimPrefix(id, "./")

	for _, k := range b.aliasKeys {
		if strings.HasPrefix(id, k) {
			id = b.aliases[k] + strings.TrimPrefix(id, k)
			break
		}
	}

	if b.collapseIndex {
		if ext := path.Ext(id); domain.IsSourceExtension(ext) {
			id = strings.TrimSuffix(id, ext)
		}
		id = strings.TrimSuffix(id, "/index")
	}
	return id
}
