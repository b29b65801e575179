// Package search embeds retrieval queries and runs vector similarity
// search against the document index.
package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domsearch "github.com/woped/rag/internal/domain/search"
)

// Service handles similarity search over indexed document chunks.
type Service struct {
	repo     Repository
	embed    Embedder
	topK     int
	minScore float64
	logger   *zap.Logger
}

// New creates a search service. topK and minScore come from the retrieval
// configuration.
func New(repo Repository, embed Embedder, topK int, minScore float64, logger *zap.Logger) *Service {
	return &Service{repo: repo, embed: embed, topK: topK, minScore: minScore, logger: logger}
}

// Retrieve embeds the query and runs KNN search. An empty query yields no
// results instead of an error. Hits below the similarity threshold are
// dropped.
func (s *Service) Retrieve(ctx context.Context, query string) ([]domsearch.Result, error) {
	if strings.TrimSpace(query) == "" {
		s.logger.Warn("empty retrieval query")
		return nil, nil
	}

	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	results, err := s.repo.SearchKNN(ctx, emb.Embedding, s.topK)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	if s.minScore > 0 {
		kept := results[:0]
		for _, r := range results {
			if r.Score() >= s.minScore {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	s.logger.Debug("retrieval complete",
		zap.Int("results", len(results)),
		zap.Int("top_k", s.topK),
		zap.Float64("min_score", s.minScore),
	)
	return results, nil
}
