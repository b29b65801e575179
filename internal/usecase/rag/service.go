// Package rag implements the enrich pipeline: diagram term extraction,
// retrieval query augmentation, similarity search and context folding.
package rag

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/woped/rag/internal/diagram"
	"github.com/woped/rag/internal/domain"
	domsearch "github.com/woped/rag/internal/domain/search"
)

// Config holds the pipeline settings.
type Config struct {
	// PreprocessingEnabled switches diagram term extraction on.
	// Off by default; with it off the retrieval query is the prompt as-is.
	PreprocessingEnabled bool
	// Instruction is an extra instruction block folded into the enriched
	// prompt between the original prompt and the context.
	Instruction string
}

// Service orchestrates the RAG enrich workflow.
type Service struct {
	extractor TermExtractor
	retriever Retriever
	cfg       Config
	logger    *zap.Logger
}

// New creates a RAG service.
func New(extractor TermExtractor, retriever Retriever, cfg Config, logger *zap.Logger) *Service {
	return &Service{extractor: extractor, retriever: retriever, cfg: cfg, logger: logger}
}

// Enrich runs the full pipeline for one request: extract terms from the
// diagram (when preprocessing is enabled), augment the retrieval query,
// retrieve context documents and fold them into the prompt. Diagram
// problems never fail the request; they only reduce the term set. With no
// retrieved context the original prompt is returned unchanged.
func (s *Service) Enrich(ctx context.Context, prompt, diagramMarkup string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", domain.ErrEmptyPrompt
	}

	terms := s.extractor.Extract(diagram.Source{Markup: diagramMarkup}, s.cfg.PreprocessingEnabled)
	query := AugmentQuery(prompt, terms)

	s.logger.Debug("running retrieval",
		zap.Int("diagram_terms", len(terms)),
		zap.Int("query_len", len(query)),
	)

	results, err := s.retriever.Retrieve(ctx, query)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}
	if len(results) == 0 {
		s.logger.Warn("no context retrieved, returning original prompt")
		return prompt, nil
	}

	return s.composePrompt(prompt, results), nil
}

// Retrieve exposes plain similarity search (used by the search endpoint).
func (s *Service) Retrieve(ctx context.Context, query string) ([]domsearch.Result, error) {
	return s.retriever.Retrieve(ctx, query)
}

// composePrompt renders the enriched prompt template.
func (s *Service) composePrompt(prompt string, docs []domsearch.Result) string {
	blocks := make([]string, len(docs))
	for i := range docs {
		blocks[i] = fmt.Sprintf("[Document %d]\n%s", i+1, docs[i].Content())
	}
	context := strings.Join(blocks, "\n\n")

	return fmt.Sprintf("%s\n\n%s\n\nKontext:\n%s\n\nAntwort:", prompt, s.cfg.Instruction, context)
}
