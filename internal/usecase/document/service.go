// Package document implements the document management use cases.
package document

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/woped/rag/internal/domain"
	domdoc "github.com/woped/rag/internal/domain/document"
)

// Input is a single document to store.
type Input struct {
	ID      string
	Content string
	Meta    map[string]string
}

// Service orchestrates document persistence with embedding.
type Service struct {
	repo   Repository
	embed  Embedder
	logger *zap.Logger
}

// New creates a document service.
func New(repo Repository, embed Embedder, logger *zap.Logger) *Service {
	return &Service{repo: repo, embed: embed, logger: logger}
}

// Add validates, embeds and stores a document. Returns true when a new
// document was created rather than an existing one replaced.
func (s *Service) Add(ctx context.Context, in Input) (bool, error) {
	doc, err := s.buildDocument(ctx, in)
	if err != nil {
		return false, err
	}

	created, err := s.repo.Upsert(ctx, &doc)
	if err != nil {
		return false, fmt.Errorf("upsert %s: %w", in.ID, err)
	}

	s.logger.Info("document stored",
		zap.String("id", in.ID),
		zap.Bool("created", created))
	return created, nil
}

// AddBatch embeds and stores a batch of documents in one pipelined write.
func (s *Service) AddBatch(ctx context.Context, inputs []Input) error {
	if len(inputs) == 0 {
		return nil
	}

	docs := make([]domdoc.Document, 0, len(inputs))
	for _, in := range inputs {
		doc, err := s.buildDocument(ctx, in)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	if err := s.repo.UpsertMulti(ctx, docs); err != nil {
		return fmt.Errorf("upsert batch: %w", err)
	}

	s.logger.Info("document batch stored", zap.Int("count", len(docs)))
	return nil
}

// Get returns a stored document by ID.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	return s.repo.Get(ctx, id)
}

// Update replaces the content and metadata of an existing document.
// Unknown IDs yield domain.ErrDocumentNotFound.
func (s *Service) Update(ctx context.Context, in Input) error {
	exists, err := s.repo.Exists(ctx, in.ID)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", in.ID, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}

	doc, err := s.buildDocument(ctx, in)
	if err != nil {
		return err
	}

	if _, err := s.repo.Upsert(ctx, &doc); err != nil {
		return fmt.Errorf("upsert %s: %w", in.ID, err)
	}
	return nil
}

// Delete removes a document by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// DeleteByIDPrefix removes all documents whose ID starts with idPrefix.
func (s *Service) DeleteByIDPrefix(ctx context.Context, idPrefix string) (int, error) {
	return s.repo.DeleteByIDPrefix(ctx, idPrefix)
}

func (s *Service) buildDocument(ctx context.Context, in Input) (domdoc.Document, error) {
	doc, err := domdoc.New(in.ID, in.Content, in.Meta)
	if err != nil {
		return domdoc.Document{}, err
	}

	emb, err := s.embed.Embed(ctx, in.Content)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("embed %s: %w", in.ID, err)
	}

	return doc.WithVector(emb.Embedding), nil
}
