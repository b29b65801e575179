// Package search executes KNN queries against the document index.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/woped/rag/internal/db"
	domsearch "github.com/woped/rag/internal/domain/search"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a search repository over the document index at keyPrefix.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// SearchKNN performs a vector similarity search and returns results ordered
// by descending similarity score.
func (r *Repo) SearchKNN(ctx context.Context, vector []float32, topK int) ([]domsearch.Result, error) {
	// No RETURN clause: metadata fields are free-form, so fetch everything
	// and drop reserved fields while parsing.
	q := &db.KNNQuery{
		IndexName: r.keyPrefix + "doc:idx",
		Vector:    vector,
		K:         topK,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	return r.parseResults(sr), nil
}

func (r *Repo) parseResults(sr *db.SearchResult) []domsearch.Result {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	prefix := r.keyPrefix + "doc:"
	results := make([]domsearch.Result, 0, len(sr.Entries))

	for _, entry := range sr.Entries {
		docID := strings.TrimPrefix(entry.Key, prefix)

		var content string
		meta := make(map[string]string)
		for k, v := range entry.Fields {
			switch {
			case k == "__content":
				content = v
			case strings.HasPrefix(k, "__"):
				// reserved fields stay out of metadata
			default:
				meta[k] = v
			}
		}

		results = append(results, domsearch.New(docID, entry.Score, content, meta))
	}

	return results
}
