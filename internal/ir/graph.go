package ir

// Dependable is implemented by items that can participate in a
// DependencyGraph: a key identifying the item plus the keys it depends
// on. Dependencies on keys never pushed are tolerated and simply do not
// constrain the order.
type Dependable[K comparable] interface {
	Key() K
	Dependencies() []K
}

// DependencyGraph orders items so that every item follows the items it
// depends on. Insertion order is preserved among unrelated items, so
// output is deterministic for a given push sequence.
type DependencyGraph[K comparable, T Dependable[K]] struct {
	nodes map[K]*graphNode[K, T]
	order []K
}

type graphNode[K comparable, T Dependable[K]] struct {
	item     T
	parents  []K
	children []K
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph[K comparable, T Dependable[K]]() *DependencyGraph[K, T] {
	return &DependencyGraph[K, T]{nodes: make(map[K]*graphNode[K, T])}
}

// Push adds an item, linking it to already-pushed dependencies and to
// already-pushed items that named it as a dependency.
func (g *DependencyGraph[K, T]) Push(item T) {
	key := item.Key()
	node := &graphNode[K, T]{item: item}

	for _, dep := range item.Dependencies() {
		if existing, ok := g.nodes[dep]; ok {
			existing.children = append(existing.children, key)
		}
		node.parents = append(node.parents, dep)
	}

	for _, k := range g.order {
		other := g.nodes[k]
		if containsKey(other.parents, key) && !containsKey(node.children, k) {
			node.children = append(node.children, k)
		}
	}

	if _, exists := g.nodes[key]; !exists {
		g.order = append(g.order, key)
	}
	g.nodes[key] = node
}

// Sorted returns the items with every dependency placed before its
// dependents. Each item appears exactly once.
func (g *DependencyGraph[K, T]) Sorted() []T {
	seen := make(map[K]bool)
	var out []T

	emit := func(n *graphNode[K, T]) {
		for _, item := range g.creationOrder(n, make(map[K]bool)) {
			if !seen[item.Key()] {
				seen[item.Key()] = true
				out = append(out, item)
			}
		}
	}

	for _, k := range g.order {
		if n := g.nodes[k]; len(n.children) == 0 {
			emit(n)
		}
	}

	// Nodes left over at this point sit on a dependency cycle and have
	// no leaf to be reached from; emit them in push order.
	for _, k := range g.order {
		if !seen[k] {
			emit(g.nodes[k])
		}
	}

	return out
}

// creationOrder lists the transitive dependencies of n followed by n
// itself. trail breaks dependency cycles; a cyclic item is emitted at
// the point the cycle closes.
func (g *DependencyGraph[K, T]) creationOrder(n *graphNode[K, T], trail map[K]bool) []T {
	key := n.item.Key()
	if trail[key] {
		return nil
	}
	trail[key] = true

	var out []T
	for _, pk := range n.parents {
		if p, ok := g.nodes[pk]; ok {
			out = append(out, g.creationOrder(p, trail)...)
		}
	}
	return append(out, n.item)
}

func containsKey[K comparable](keys []K, key K) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
