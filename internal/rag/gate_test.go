package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"researchbot/pkg/ports"
)

func TestGateFilter(t *testing.T) {
	gate := NewGate(0.5)

	t.Run("threshold is inclusive", func(t *testing.T) {
		joined, ok := gate.Filter([]ports.ScoredPassage{{Text: "exactly at", Score: 0.5}})
		require.True(t, ok)
		assert.Equal(t, "exactly at", joined)
	})

	t.Run("below threshold rejected", func(t *testing.T) {
		_, ok := gate.Filter([]ports.ScoredPassage{{Text: "almost", Score: 0.4999}})
		assert.False(t, ok)
	})

	t.Run("descending score order", func(t *testing.T) {
		joined, ok := gate.Filter([]ports.ScoredPassage{
			{Text: "second", Score: 0.6},
			{Text: "first", Score: 0.9},
			{Text: "dropped", Score: 0.1},
		})
		require.True(t, ok)
		assert.Equal(t, []string{"first", "second"}, strings.Split(joined, ContextSeparator))
	})

	t.Run("ties keep input order", func(t *testing.T) {
		joined, ok := gate.Filter([]ports.ScoredPassage{
			{Text: "a", Score: 0.7},
			{Text: "b", Score: 0.7},
		})
		require.True(t, ok)
		assert.Equal(t, "a"+ContextSeparator+"b", joined)
	})

	t.Run("passages are trimmed", func(t *testing.T) {
		joined, ok := gate.Filter([]ports.ScoredPassage{{Text: "  padded \n", Score: 0.8}})
		require.True(t, ok)
		assert.Equal(t, "padded", joined)
	})

	t.Run("empty input", func(t *testing.T) {
		_, ok := gate.Filter(nil)
		assert.False(t, ok)
	})

	t.Run("raising the threshold never admits more", func(t *testing.T) {
		candidates := []ports.ScoredPassage{
			{Text: "a", Score: 0.2}, {Text: "b", Score: 0.5},
			{Text: "c", Score: 0.7}, {Text: "d", Score: 0.95},
		}
		prev := len(candidates) + 1
		for _, th := range []float64{0.0, 0.2, 0.5, 0.7, 0.95, 1.0} {
			joined, ok := NewGate(th).Filter(candidates)
			n := 0
			if ok {
				n = len(strings.Split(joined, ContextSeparator))
			}
			assert.LessOrEqual(t, n, prev, "threshold %v", th)
			prev = n
		}
	})
}
