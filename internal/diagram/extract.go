package diagram

// Extractor pulls raw label terms out of diagram markup in document order.
// Extraction never deduplicates and never fails: malformed fragments are
// skipped element by element, and a fully unparseable document yields an
// empty sequence.
type Extractor interface {
	Extract(markup string) []Term
}

// ExtractorFor returns the extractor for a detected format.
// Returns nil for FormatUnknown; callers must check the format first.
func ExtractorFor(f Format) Extractor {
	switch f {
	case FormatBPMN:
		return bpmnExtractor{}
	case FormatPNML:
		return pnmlExtractor{}
	default:
		return nil
	}
}
