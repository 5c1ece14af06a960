package rag

import (
	"sort"
	"strings"

	"researchbot/pkg/ports"
)

// ContextSeparator joins accepted passages in the assembled context.
const ContextSeparator = "\n\n---\n\n"

// Gate filters ranked candidates against a relevance threshold and
// assembles the accepted ones into a single context string. Purely
// deterministic; it never calls a search backend itself.
type Gate struct {
	threshold float64
}

// NewGate creates a gate with a threshold in [0,1]. The threshold is
// inclusive: a passage scoring exactly the threshold is accepted.
func NewGate(threshold float64) *Gate {
	return &Gate{threshold: threshold}
}

// Threshold returns the configured relevance threshold.
func (g *Gate) Threshold() float64 { return g.threshold }

// Filter returns the joined text of every passage with score >= threshold,
// in descending score order, and whether anything qualified.
func (g *Gate) Filter(candidates []ports.ScoredPassage) (string, bool) {
	accepted := make([]ports.ScoredPassage, 0, len(candidates))
	for _, c := range candidates {
		if c.Score >= g.threshold {
			accepted = append(accepted, c)
		}
	}
	if len(accepted) == 0 {
		return "", false
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Score > accepted[j].Score
	})

	parts := make([]string, len(accepted))
	for i, c := range accepted {
		parts[i] = strings.TrimSpace(c.Text)
	}
	return strings.Join(parts, ContextSeparator), true
}
