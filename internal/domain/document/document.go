// Package document holds the indexed document chunk value object.
package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/woped/rag/internal/domain"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_:.-]+$`)

// MaxContentSize is the maximum document content size in bytes.
const MaxContentSize = 163840 // 160KB

// Document is an immutable indexed chunk: text content, free-form metadata
// and the embedding vector computed for the content.
type Document struct {
	id      string
	content string
	meta    map[string]string
	vector  []float32
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9_:.-]+$, 1-256 chars. Content: non-empty, max 160KB.
// Metadata keys must not use the reserved "__" prefix (storage field names).
func New(id, content string, meta map[string]string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("%w: document ID is required", domain.ErrInvalidDocument)
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("%w: document ID too long (max 256)", domain.ErrInvalidDocument)
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf(
			"%w: document ID must be alphanumeric with underscores, colons, dots and hyphens",
			domain.ErrInvalidDocument)
	}
	if content == "" {
		return Document{}, fmt.Errorf("%w: content is required", domain.ErrInvalidDocument)
	}
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("%w: content too large (max %d bytes)", domain.ErrInvalidDocument, MaxContentSize)
	}
	for k := range meta {
		if strings.HasPrefix(k, "__") {
			return Document{}, fmt.Errorf("%w: metadata key %q uses reserved prefix", domain.ErrInvalidDocument, k)
		}
	}

	return Document{id: id, content: content, meta: cloneMeta(meta)}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(id, content string, meta map[string]string, vector []float32) Document {
	return Document{id: id, content: content, meta: meta, vector: vector}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Content returns the document text content.
func (d *Document) Content() string { return d.content }

// Meta returns the metadata fields.
func (d *Document) Meta() map[string]string { return d.meta }

// Vector returns the embedding vector.
func (d *Document) Vector() []float32 { return d.vector }

// WithVector returns a copy with the given vector set.
func (d *Document) WithVector(v []float32) Document {
	return Document{id: d.id, content: d.content, meta: d.meta, vector: v}
}

func cloneMeta(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
