package diagram

import (
	"encoding/xml"
	"strings"
)

// pnmlNodeKinds maps Petri-net node local names to the kind of label they
// produce.
var pnmlNodeKinds = map[string]Kind{
	"place":      KindPlaceLabel,
	"transition": KindTransitionLabel,
}

type pnmlExtractor struct{}

// Extract walks place and transition elements and collects their
// <name><text> content, plus any name attributes directly on the node.
// Works with and without namespace prefixes. Like the BPMN walk, a decode
// error returns what has been collected so far.
func (pnmlExtractor) Extract(markup string) []Term {
	dec := xml.NewDecoder(strings.NewReader(markup))

	var (
		terms []Term
		stack []string
		kind  Kind // kind of the innermost open place/transition, "" outside
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			return terms
		}
		switch t := tok.(type) {
		case xml.StartElement:
			local := t.Name.Local
			if k, ok := pnmlNodeKinds[local]; ok {
				kind = k
				for _, attr := range t.Attr {
					if attr.Name.Local != "name" {
						continue
					}
					if text := strings.TrimSpace(attr.Value); text != "" {
						terms = append(terms, Term{Text: text, Kind: kind})
					}
				}
			}
			stack = append(stack, local)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if _, ok := pnmlNodeKinds[t.Name.Local]; ok {
				kind = ""
			}

		case xml.CharData:
			if kind == "" || !labelTextOpen(stack) {
				continue
			}
			if text := strings.TrimSpace(string(t)); text != "" {
				terms = append(terms, Term{Text: text, Kind: kind})
			}
		}
	}
}

// labelTextOpen reports whether the currently open element is a <text>
// nested under a <name>.
func labelTextOpen(stack []string) bool {
	if len(stack) < 2 || stack[len(stack)-1] != "text" {
		return false
	}
	for _, name := range stack[:len(stack)-1] {
		if name == "name" {
			return true
		}
	}
	return false
}
