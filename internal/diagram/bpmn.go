package diagram

import (
	"encoding/xml"
	"strings"
)

// bpmnNodeKinds maps BPMN flow-node local names to the term kind their
// name attribute produces. Matching on the local name handles both
// prefixed (<bpmn:task>) and plain (<task>) dialects.
var bpmnNodeKinds = map[string]Kind{
	"task":                   KindActivityName,
	"userTask":               KindActivityName,
	"serviceTask":            KindActivityName,
	"scriptTask":             KindActivityName,
	"manualTask":             KindActivityName,
	"businessRuleTask":       KindActivityName,
	"sendTask":               KindActivityName,
	"receiveTask":            KindActivityName,
	"callActivity":           KindActivityName,
	"subProcess":             KindActivityName,
	"startEvent":             KindEventName,
	"endEvent":               KindEventName,
	"intermediateThrowEvent": KindEventName,
	"intermediateCatchEvent": KindEventName,
	"boundaryEvent":          KindEventName,
	"exclusiveGateway":       KindGatewayName,
	"parallelGateway":        KindGatewayName,
	"inclusiveGateway":       KindGatewayName,
	"eventBasedGateway":      KindGatewayName,
	"complexGateway":         KindGatewayName,
	"lane":                   KindLaneName,
	"participant":            KindLaneName,
}

type bpmnExtractor struct{}

// Extract streams the markup token by token and collects non-empty name
// attributes of flow nodes. A decode error ends the walk; everything read
// up to that point is returned, so partially well-formed documents still
// contribute their readable labels.
func (bpmnExtractor) Extract(markup string) []Term {
	dec := xml.NewDecoder(strings.NewReader(markup))
	var terms []Term
	for {
		tok, err := dec.Token()
		if err != nil {
			return terms
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		kind, ok := bpmnNodeKinds[se.Name.Local]
		if !ok {
			continue
		}
		for _, attr := range se.Attr {
			if attr.Name.Local != "name" {
				continue
			}
			if text := strings.TrimSpace(attr.Value); text != "" {
				terms = append(terms, Term{Text: text, Kind: kind})
			}
		}
	}
}
