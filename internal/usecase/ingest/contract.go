package ingest

import (
	"context"

	"github.com/woped/rag/internal/usecase/document"
)

// Loader extracts text from PDF files on disk.
type Loader interface {
	LoadFile(path string) (string, error)
	ListFiles(dir string) ([]string, error)
}

// Indexer stores chunked documents.
type Indexer interface {
	AddBatch(ctx context.Context, inputs []document.Input) error
	DeleteByIDPrefix(ctx context.Context, idPrefix string) (int, error)
}
