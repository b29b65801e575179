// Package diagram turns raw BPMN/PNML process-diagram markup into a clean
// set of indexable business terms: format detection, label extraction and
// multi-stage term filtering.
package diagram

import "strings"

// Format identifies the diagram dialect of a piece of markup.
type Format int

const (
	// FormatUnknown means no characteristic dialect marker was found.
	FormatUnknown Format = iota
	// FormatBPMN is Business Process Model and Notation markup.
	FormatBPMN
	// FormatPNML is Petri Net Markup Language markup.
	FormatPNML
)

func (f Format) String() string {
	switch f {
	case FormatBPMN:
		return "bpmn"
	case FormatPNML:
		return "pnml"
	default:
		return "unknown"
	}
}

// Source is one diagram's raw markup plus an optional filename hint.
// Immutable once read; created per extraction call.
type Source struct {
	Markup   string
	Filename string
}

// Detect classifies markup by its characteristic top-level markers.
// Detection keys on marker substrings instead of a full parse, so a
// malformed but recognizable document still classifies. FormatUnknown is a
// valid result, not an error: the caller degrades to "no extraction".
func Detect(markup string) Format {
	if !strings.Contains(markup, "<?xml") {
		return FormatUnknown
	}
	switch {
	case strings.Contains(markup, "<bpmn:") || strings.Contains(markup, "<definitions"):
		return FormatBPMN
	case strings.Contains(markup, "<pnml"):
		return FormatPNML
	default:
		return FormatUnknown
	}
}
