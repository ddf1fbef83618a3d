package graph

import "sort"

// FindCycles returns one representative cycle per strongly connected
// component with more than one module. The representative starts at the
// component's smallest id and is the shortest way back to it, following
// successors in sorted order. Results are sorted by their first element, so
// the output depends only on the graph, never on insertion order.
func FindCycles(g *Graph) [][]string {
	var cycles [][]string
	for _, scc := range StronglyConnected(g) {
		if len(scc) < 2 {
			continue
		}
		cycles = append(cycles, shortestCycle(g, scc))
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// StronglyConnected returns the strongly connected components of g using
// Tarjan's algorithm. Each component is sorted; components are ordered by
// their smallest id.
func StronglyConnected(g *Graph) [][]string {
	t := &tarjan{
		g:       g,
		index:   make(map[string]int, len(g.ids)),
		lowlink: make(map[string]int, len(g.ids)),
		onStack: make(map[string]bool, len(g.ids)),
	}
	for _, id := range g.ids {
		if _, visited := t.index[id]; !visited {
			t.strongConnect(id)
		}
	}
	for _, c := range t.components {
		sort.Strings(c)
	}
	sort.Slice(t.components, func(i, j int) bool { return t.components[i][0] < t.components[j][0] })
	return t.components
}

type tarjan struct {
	g          *Graph
	counter    int
	index      map[string]int
	lowlink    map[string]int
	onStack    map[string]bool
	stack      []string
	components [][]string
}

func (t *tarjan) strongConnect(v string) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.g.succ[v] {
		if _, visited := t.index[w]; !visited {
			t.strongConnect(w)
			t.lowlink[v] = min(t.lowlink[v], t.lowlink[w])
		} else if t.onStack[w] {
			t.lowlink[v] = min(t.lowlink[v], t.index[w])
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}
	var comp []string
	for {
		n := len(t.stack) - 1
		w := t.stack[n]
		t.stack = t.stack[:n]
		t.onStack[w] = false
		comp = append(comp, w)
		if w == v {
			break
		}
	}
	t.components = append(t.components, comp)
}

// shortestCycle finds the shortest path from the smallest member of scc back
// to itself, staying inside the component.
func shortestCycle(g *Graph, scc []string) []string {
	start := scc[0]
	member := make(map[string]bool, len(scc))
	for _, id := range scc {
		member[id] = true
	}

	parent := map[string]string{start: ""}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.succ[cur] {
			if next == start {
				return pathTo(parent, start, cur)
			}
			if !member[next] {
				continue
			}
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	return scc
}
