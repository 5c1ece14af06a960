package graph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"researchbot/pkg/domain"
	"researchbot/pkg/graph"
)

func noop(ctx context.Context, state *domain.State) (*graph.Update, error) {
	return nil, nil
}

func TestBuilderCompile(t *testing.T) {
	t.Run("valid linear graph", func(t *testing.T) {
		g, err := graph.NewBuilder().
			SetEntry("a").
			AddNode("a", noop).
			AddNode("b", noop).
			AddEdge("a", "b").
			AddEdge("b", graph.End).
			Compile()
		require.NoError(t, err)
		assert.Equal(t, graph.NodeID("a"), g.Entry())
	})

	t.Run("missing entry", func(t *testing.T) {
		_, err := graph.NewBuilder().
			AddNode("a", noop).
			AddEdge("a", graph.End).
			Compile()
		require.Error(t, err)
	})

	t.Run("unknown entry", func(t *testing.T) {
		_, err := graph.NewBuilder().
			SetEntry("ghost").
			AddNode("a", noop).
			AddEdge("a", graph.End).
			Compile()
		require.Error(t, err)
	})

	t.Run("dangling edge target", func(t *testing.T) {
		_, err := graph.NewBuilder().
			SetEntry("a").
			AddNode("a", noop).
			AddEdge("a", "ghost").
			Compile()
		require.Error(t, err)
	})

	t.Run("node without an out-edge", func(t *testing.T) {
		_, err := graph.NewBuilder().
			SetEntry("a").
			AddNode("a", noop).
			AddNode("b", noop).
			AddEdge("a", "b").
			Compile()
		require.Error(t, err)
	})

	t.Run("node with both edge kinds", func(t *testing.T) {
		_, err := graph.NewBuilder().
			SetEntry("a").
			AddNode("a", noop).
			AddNode("b", noop).
			AddEdge("a", "b").
			AddConditionalEdge("a", func(*domain.State) graph.NodeID { return "b" }, "b").
			AddEdge("b", graph.End).
			Compile()
		require.Error(t, err)
	})

	t.Run("interrupt on undeclared node", func(t *testing.T) {
		_, err := graph.NewBuilder().
			SetEntry("a").
			AddNode("a", noop).
			AddEdge("a", graph.End).
			InterruptBefore("ghost").
			Compile()
		require.Error(t, err)
	})

	t.Run("conditional candidate must be declared", func(t *testing.T) {
		_, err := graph.NewBuilder().
			SetEntry("a").
			AddNode("a", noop).
			AddNode("b", noop).
			AddConditionalEdge("a", func(*domain.State) graph.NodeID { return "ghost" }, "ghost").
			AddEdge("b", graph.End).
			Compile()
		require.Error(t, err)
	})
}

func TestGraphNext(t *testing.T) {
	route := func(state *domain.State) graph.NodeID {
		if state.QuizChoice == "yes" {
			return "b"
		}
		return "rogue"
	}

	g, err := graph.NewBuilder().
		SetEntry("a").
		AddNode("a", noop).
		AddNode("b", noop).
		AddConditionalEdge("a", route, "b").
		AddEdge("b", graph.End).
		Compile()
	require.NoError(t, err)

	t.Run("declared candidate", func(t *testing.T) {
		next, err := g.Next("a", &domain.State{QuizChoice: "yes"})
		require.NoError(t, err)
		assert.Equal(t, graph.NodeID("b"), next)
	})

	t.Run("route outside candidate set fails", func(t *testing.T) {
		_, err := g.Next("a", &domain.State{QuizChoice: "no"})
		require.Error(t, err)
		var routeErr *graph.RouteError
		require.ErrorAs(t, err, &routeErr)
		assert.Equal(t, graph.NodeID("rogue"), routeErr.Target)
	})

	t.Run("static edge", func(t *testing.T) {
		next, err := g.Next("b", &domain.State{})
		require.NoError(t, err)
		assert.Equal(t, graph.End, next)
	})
}
