// Package extraction orchestrates diagram term extraction: format
// detection, label extraction and filtering for one diagram source.
package extraction

import (
	"go.uber.org/zap"

	"github.com/woped/rag/internal/diagram"
	"github.com/woped/rag/internal/metrics"
)

// Service turns raw diagram markup into a filtered, deduplicated,
// order-preserving list of retrieval terms. The filter (and its rule set)
// is injected so tests can substitute policies; the production rules come
// from diagram.DefaultRules.
type Service struct {
	filter *diagram.Filter
	logger *zap.Logger
}

// New creates an extraction service.
func New(filter *diagram.Filter, logger *zap.Logger) *Service {
	return &Service{filter: filter, logger: logger}
}

// Extract runs the pipeline for one diagram source. enabled=false is the
// configured opt-out: no terms, markup untouched. An unrecognized format
// degrades to no terms as well; neither case is an error. Same markup and
// flag always produce the same result.
func (s *Service) Extract(src diagram.Source, enabled bool) []string {
	if !enabled {
		return nil
	}

	format := diagram.Detect(src.Markup)
	metrics.DiagramsProcessedTotal.WithLabelValues(format.String()).Inc()
	if format == diagram.FormatUnknown {
		s.logger.Debug("unrecognized diagram format, skipping term extraction",
			zap.String("filename", src.Filename))
		return nil
	}

	raw := diagram.ExtractorFor(format).Extract(src.Markup)
	terms := s.filter.Apply(raw)

	metrics.DiagramTermsTotal.WithLabelValues("extracted").Add(float64(len(raw)))
	metrics.DiagramTermsTotal.WithLabelValues("kept").Add(float64(len(terms)))
	s.logger.Debug("extracted diagram terms",
		zap.String("format", format.String()),
		zap.String("filename", src.Filename),
		zap.Int("raw", len(raw)),
		zap.Int("kept", len(terms)),
	)

	return terms
}
