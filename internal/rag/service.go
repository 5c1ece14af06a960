package rag

import (
	"context"
	"log/slog"
	"sync"

	"researchbot/internal/logging"
	"researchbot/pkg/domain"
	"researchbot/pkg/ports"
)

// Service owns the retrieval side of the dialogue: it guards one-time index
// construction, runs queries through the relevance gate, and converts
// backend failures into the protocol sentinels the tool router matches on.
//
// Construct explicitly and inject; there is no package-level instance.
type Service struct {
	index  ports.DocumentIndex
	gate   *Gate
	topK   int
	logger *slog.Logger

	// mu guards ready. A failed build leaves ready false so a later call
	// can retry initialization; concurrent first-use performs at most one
	// build at a time and the first success wins.
	mu    sync.Mutex
	ready bool
}

// Option configures the Service.
type Option func(*Service)

// WithTopK sets how many candidates are requested per query.
func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a retrieval service over an index backend.
func NewService(index ports.DocumentIndex, gate *Gate, opts ...Option) *Service {
	s := &Service{
		index:  index,
		gate:   gate,
		topK:   5,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ready reports whether the index has been built successfully.
func (s *Service) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// EnsureReady builds the index if it has not been built yet. Idempotent:
// calling it when already initialized is a no-op, not a rebuild.
func (s *Service) EnsureReady(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := s.index.Build(ctx); err != nil {
		s.logger.WarnContext(ctx, "retrieval index build failed", "err", err)
		return err
	}
	s.ready = true
	s.logger.InfoContext(ctx, "retrieval index ready")
	return nil
}

// Search runs a query and returns either assembled context or one of the
// protocol sentinels. Backend and initialization failures are converted to
// ServiceUnavailable here; this is the only place an error becomes normal
// control flow.
func (s *Service) Search(ctx context.Context, query string) string {
	if err := s.EnsureReady(ctx); err != nil {
		return domain.ServiceUnavailable
	}

	candidates, err := s.index.Search(ctx, query, s.topK)
	if err != nil {
		s.logger.WarnContext(ctx, "retrieval query failed", "err", err, "query", query)
		return domain.ServiceUnavailable
	}

	joined, ok := s.gate.Filter(candidates)
	if !ok {
		s.logger.DebugContext(ctx, "no passages cleared relevance threshold",
			"query", query, "threshold", s.gate.Threshold(), "candidates", len(candidates))
		return domain.NoRelevantDocuments
	}
	return joined
}
