package memindex_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"researchbot/pkg/adapters/memindex"
)

func corpus() fstest.MapFS {
	return fstest.MapFS{
		"sleep.md": &fstest.MapFile{Data: []byte(
			"Sleep hygiene means consistent habits around bedtime.\n\n" +
				"Caffeine late in the day disrupts deep sleep stages.",
		)},
		"hydration.txt": &fstest.MapFile{Data: []byte(
			"Drinking water regularly helps prevent tension headaches.",
		)},
		"ignored.json": &fstest.MapFile{Data: []byte(`{"not": "indexed"}`)},
	}
}

func TestIndexBuildAndSearch(t *testing.T) {
	ctx := context.Background()
	ix := memindex.New("docs", memindex.WithFS(corpus()))
	require.NoError(t, ix.Build(ctx))

	t.Run("relevant passage ranks first", func(t *testing.T) {
		results, err := ix.Search(ctx, "water headaches", 5)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Contains(t, results[0].Text, "tension headaches")
		assert.Greater(t, results[0].Score, 0.5)
	})

	t.Run("scores stay within unit range", func(t *testing.T) {
		results, err := ix.Search(ctx, "sleep caffeine bedtime", 5)
		require.NoError(t, err)
		for _, r := range results {
			assert.GreaterOrEqual(t, r.Score, 0.0)
			assert.LessOrEqual(t, r.Score, 1.0)
		}
	})

	t.Run("topK truncates", func(t *testing.T) {
		results, err := ix.Search(ctx, "sleep water caffeine", 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("no overlap means no results", func(t *testing.T) {
		results, err := ix.Search(ctx, "quantum chromodynamics", 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("empty query", func(t *testing.T) {
		results, err := ix.Search(ctx, "  ", 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestIndexErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("search before build", func(t *testing.T) {
		ix := memindex.New("docs", memindex.WithFS(corpus()))
		_, err := ix.Search(ctx, "water", 5)
		require.Error(t, err)
	})

	t.Run("empty corpus", func(t *testing.T) {
		ix := memindex.New("docs", memindex.WithFS(fstest.MapFS{}))
		require.Error(t, ix.Build(ctx))
	})
}
