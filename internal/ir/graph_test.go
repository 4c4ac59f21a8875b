package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type graphItem struct {
	key  string
	deps []string
}

func (i graphItem) Key() string            { return i.key }
func (i graphItem) Dependencies() []string { return i.deps }

func TestSortedEmptyGraph(t *testing.T) {
	g := NewDependencyGraph[string, graphItem]()
	assert.Empty(t, g.Sorted())
}

func TestSortedRespectsDependencies(t *testing.T) {
	g := NewDependencyGraph[string, graphItem]()

	g.Push(graphItem{key: "Alias3", deps: []string{"CustomNumber"}})
	g.Push(graphItem{key: "Alias4", deps: []string{"Alias1"}})
	g.Push(graphItem{key: "Alias2", deps: []string{"CustomNumber"}})
	g.Push(graphItem{key: "Alias6"})
	g.Push(graphItem{key: "Alias1", deps: []string{"Alias2"}})
	g.Push(graphItem{key: "Alias5", deps: []string{"Alias1"}})
	g.Push(graphItem{key: "CustomNumber"})

	items := g.Sorted()
	require.Len(t, items, 7, "every pushed item appears exactly once")

	pos := make(map[string]int, len(items))
	for i, item := range items {
		pos[item.key] = i
	}

	assert.Less(t, pos["CustomNumber"], pos["Alias3"])
	assert.Less(t, pos["CustomNumber"], pos["Alias2"])
	assert.Less(t, pos["Alias2"], pos["Alias1"])
	assert.Less(t, pos["Alias1"], pos["Alias4"])
	assert.Less(t, pos["Alias1"], pos["Alias5"])
}

func TestSortedIsDeterministic(t *testing.T) {
	build := func() []graphItem {
		g := NewDependencyGraph[string, graphItem]()
		g.Push(graphItem{key: "b", deps: []string{"a"}})
		g.Push(graphItem{key: "c"})
		g.Push(graphItem{key: "a"})
		return g.Sorted()
	}

	first := build()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, build())
	}
}

func TestSortedCycleTerminates(t *testing.T) {
	g := NewDependencyGraph[string, graphItem]()
	g.Push(graphItem{key: "a", deps: []string{"b"}})
	g.Push(graphItem{key: "b", deps: []string{"a"}})

	items := g.Sorted()
	assert.Len(t, items, 2, "a dependency cycle must not drop or duplicate items")
}
