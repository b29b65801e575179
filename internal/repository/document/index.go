package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/woped/rag/internal/db"
)

// HNSWConfig carries graph build parameters for the vector index.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// indexManager is the consumer interface for index lifecycle.
type indexManager interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// BuildIndexDefinition builds the FT schema covering all document hashes:
// a TEXT field over __content, a TAG field over the ingestion source and an
// HNSW/COSINE vector field over __vector.
func BuildIndexDefinition(keyPrefix string, vectorDim int, hnsw HNSWConfig) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     IndexName(keyPrefix),
		Prefixes: []string{keyPrefix + "doc:"},
		Fields: []db.IndexField{
			{
				Name: "__content",
				Type: db.IndexFieldText,
			},
			{
				Name: "source",
				Type: db.IndexFieldTag,
			},
			{
				Name:              "__vector",
				Alias:             "vector",
				Type:              db.IndexFieldVector,
				VectorDim:         vectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           hnsw.M,
				VectorEFConstruct: hnsw.EFConstruct,
			},
		},
	}
}

// IndexName returns the FT index name for a key prefix.
func IndexName(keyPrefix string) string {
	return keyPrefix + "doc:idx"
}

// EnsureIndex creates the document index if it does not exist yet.
func EnsureIndex(ctx context.Context, mgr indexManager, keyPrefix string, vectorDim int, hnsw HNSWConfig) error {
	exists, err := mgr.IndexExists(ctx, IndexName(keyPrefix))
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def := BuildIndexDefinition(keyPrefix, vectorDim, hnsw)
	if err := mgr.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}
