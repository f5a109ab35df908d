package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.Zero(t, g.Len())
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Equal(t, 1, g.Len())

	g.AddNode("a") // Test idempotency
	assert.Equal(t, 1, g.Len())

	g.AddNode("b")
	assert.Equal(t, 2, g.Len())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("a", "b") // a depends on b
		require.NoError(t, err)

		deps, err := g.Dependencies("a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, deps)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("acyclic diamond", func(t *testing.T) {
		g := New()
		for _, id := range []string{"top", "left", "right", "base"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("top", "left"))
		require.NoError(t, g.AddEdge("top", "right"))
		require.NoError(t, g.AddEdge("left", "base"))
		require.NoError(t, g.AddEdge("right", "base"))

		assert.Nil(t, g.DetectCycles())
	})

	t.Run("self reference", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		require.NoError(t, g.AddEdge("a", "a"))

		cycle := g.DetectCycles()
		require.NotNil(t, cycle)
		assert.Equal(t, []string{"a", "a"}, cycle)
	})

	t.Run("transitive cycle reports members", func(t *testing.T) {
		g := New()
		for _, id := range []string{"a", "b", "c"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "a"))

		cycle := g.DetectCycles()
		require.NotNil(t, cycle)
		assert.Equal(t, []string{"a", "b", "c", "a"}, cycle)
	})
}
