// Package ingest turns PDF files into chunked, embedded documents.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/woped/rag/internal/usecase/document"
)

// Service chunks extracted text and indexes it through the document service.
type Service struct {
	loader  Loader
	indexer Indexer
	chunker *SentenceChunker
	logger  *zap.Logger
}

// New creates an ingestion service.
func New(loader Loader, indexer Indexer, chunker *SentenceChunker, logger *zap.Logger) *Service {
	return &Service{loader: loader, indexer: indexer, chunker: chunker, logger: logger}
}

// IndexFile ingests one PDF: extracts text, chunks it, replaces all chunks
// previously stored under the same file name, and indexes the new ones.
// Chunk IDs are "<filename>:<index>". Returns the number of chunks indexed.
func (s *Service) IndexFile(ctx context.Context, path string) (int, error) {
	name := filepath.Base(path)

	text, err := s.loader.LoadFile(path)
	if err != nil {
		return 0, err
	}

	chunks := s.chunker.Chunk(text)
	if len(chunks) == 0 {
		s.logger.Warn("pdf produced no text", zap.String("file", name))
		return 0, nil
	}

	// Replace: stale chunks of an older version of the file must not survive.
	if _, err := s.indexer.DeleteByIDPrefix(ctx, name+":"); err != nil {
		return 0, fmt.Errorf("delete old chunks %s: %w", name, err)
	}

	inputs := make([]document.Input, len(chunks))
	for i, chunk := range chunks {
		inputs[i] = document.Input{
			ID:      name + ":" + strconv.Itoa(i),
			Content: chunk,
			Meta:    map[string]string{"source": name},
		}
	}

	if err := s.indexer.AddBatch(ctx, inputs); err != nil {
		return 0, fmt.Errorf("index chunks %s: %w", name, err)
	}

	s.logger.Info("pdf indexed",
		zap.String("file", name),
		zap.Int("chunks", len(chunks)))
	return len(chunks), nil
}

// IndexDirectory ingests every PDF in a directory. Files that fail are
// logged and skipped so one broken PDF does not block the rest.
func (s *Service) IndexDirectory(ctx context.Context, dir string) (int, error) {
	paths, err := s.loader.ListFiles(dir)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, path := range paths {
		n, err := s.IndexFile(ctx, path)
		if err != nil {
			s.logger.Error("pdf ingestion failed",
				zap.String("file", filepath.Base(path)),
				zap.Error(err))
			continue
		}
		total += n
	}

	s.logger.Info("directory indexed",
		zap.String("dir", dir),
		zap.Int("files", len(paths)),
		zap.Int("chunks", total))
	return total, nil
}
