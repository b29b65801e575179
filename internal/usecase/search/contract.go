package search

import (
	"context"

	"github.com/woped/rag/internal/domain"
	domsearch "github.com/woped/rag/internal/domain/search"
)

// Repository defines the storage contract for similarity search.
type Repository interface {
	SearchKNN(ctx context.Context, vector []float32, topK int) ([]domsearch.Result, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
