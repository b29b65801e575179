// Package search holds retrieval result value objects.
package search

// Result is a single similarity-search hit.
type Result struct {
	id      string
	score   float64
	content string
	meta    map[string]string
}

// New creates a search result.
func New(id string, score float64, content string, meta map[string]string) Result {
	return Result{id: id, score: score, content: content, meta: meta}
}

// ID returns the document identifier.
func (r *Result) ID() string { return r.id }

// Score returns the similarity score in [0,1] (1 = identical).
func (r *Result) Score() float64 { return r.score }

// Content returns the document text content.
func (r *Result) Content() string { return r.content }

// Meta returns the metadata fields.
func (r *Result) Meta() map[string]string { return r.meta }
