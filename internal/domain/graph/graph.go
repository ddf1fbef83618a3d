// Package graph holds the module dependency graph, its builder and the
// cycle detector.
package graph

import (
	"sort"

	"github.com/abdidvp/archguard/internal/domain"
)

// Graph is a directed dependency graph between modules. It is read-only once
// Build returns and may be shared between goroutines.
type Graph struct {
	modules map[string]domain.Module
	ids     []string // sorted
	edges   []domain.Edge
	succ    map[string][]string // sorted
	pred    map[string][]string // sorted
}

// Module returns the module with the given id.
func (g *Graph) Module(id string) (domain.Module, bool) {
	m, ok := g.modules[id]
	return m, ok
}

// ModuleIDs returns all module ids in sorted order.
func (g *Graph) ModuleIDs() []string {
	return append([]string(nil), g.ids...)
}

// Modules returns all modules sorted by id.
func (g *Graph) Modules() []domain.Module {
	out := make([]domain.Module, len(g.ids))
	for i, id := range g.ids {
		out[i] = g.modules[id]
	}
	return out
}

// Edges returns the edges in first-insertion order.
func (g *Graph) Edges() []domain.Edge {
	return append([]domain.Edge(nil), g.edges...)
}

// Successors returns the sorted direct dependencies of id.
func (g *Graph) Successors(id string) []string {
	return append([]string(nil), g.succ[id]...)
}

// Predecessors returns the sorted direct dependents of id.
func (g *Graph) Predecessors(id string) []string {
	return append([]string(nil), g.pred[id]...)
}

// HasEdge reports whether from depends directly on to.
func (g *Graph) HasEdge(from, to string) bool {
	for _, s := range g.succ[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ModuleCount returns the number of modules.
func (g *Graph) ModuleCount() int { return len(g.ids) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// LayerCounts returns the number of modules per layer tag.
func (g *Graph) LayerCounts() map[string]int {
	counts := make(map[string]int)
	for _, m := range g.modules {
		counts[m.Layer]++
	}
	return counts
}

// Reach is a module reachable from a start module together with a shortest
// path leading to it (start first, target last).
type Reach struct {
	ID   string
	Path []string
}

// ReachableFrom runs a breadth-first search from start over sorted
// successors and returns every reachable module except start, in BFS order.
// Modules for which avoid returns true are neither entered nor reported.
func (g *Graph) ReachableFrom(start string, avoid func(id string) bool) []Reach {
	parent := map[string]string{start: ""}
	queue := []string{start}
	var out []Reach

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.succ[cur] {
			if _, seen := parent[next]; seen {
				continue
			}
			if avoid != nil && avoid(next) {
				continue
			}
			parent[next] = cur
			queue = append(queue, next)
			out = append(out, Reach{ID: next, Path: pathTo(parent, start, next)})
		}
	}
	return out
}

func pathTo(parent map[string]string, start, end string) []string {
	var rev []string
	for cur := end; ; cur = parent[cur] {
		rev = append(rev, cur)
		if cur == start {
			break
		}
	}
	path := make([]string, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
