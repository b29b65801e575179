package document

import (
	"context"

	"github.com/woped/rag/internal/domain"
	domdoc "github.com/woped/rag/internal/domain/document"
)

// Repository persists documents.
type Repository interface {
	Upsert(ctx context.Context, doc *domdoc.Document) (bool, error)
	UpsertMulti(ctx context.Context, docs []domdoc.Document) error
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteByIDPrefix(ctx context.Context, idPrefix string) (int, error)
}

// Embedder produces embedding vectors for document content.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
