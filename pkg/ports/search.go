package ports

import "context"

// ScoredPassage is one ranked retrieval candidate.
type ScoredPassage struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// DocumentIndex is the retrieval backend: it builds an index once and
// answers similarity queries with ranked candidates. The engine treats it
// as a black box; ranking quality is the adapter's concern.
type DocumentIndex interface {
	// Build constructs the index. Called at most once per successful
	// initialization; callers guard idempotency.
	Build(ctx context.Context) error

	// Search returns up to topK candidates ranked by descending score.
	Search(ctx context.Context, query string, topK int) ([]ScoredPassage, error)
}

// WebSearcher is the open web search backend used when the curated corpus
// has nothing relevant.
type WebSearcher interface {
	// Search returns a text digest of the top results for a query.
	Search(ctx context.Context, query string) (string, error)
}
