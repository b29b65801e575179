package rag

import (
	"context"

	"github.com/woped/rag/internal/diagram"
	domsearch "github.com/woped/rag/internal/domain/search"
)

// TermExtractor yields retrieval terms for one diagram source.
type TermExtractor interface {
	Extract(src diagram.Source, enabled bool) []string
}

// Retriever runs similarity search for a retrieval query.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]domsearch.Result, error)
}
