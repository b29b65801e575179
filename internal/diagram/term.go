package diagram

// Kind names the element type a term was read from.
type Kind string

const (
	// KindActivityName is a task/subprocess name attribute.
	KindActivityName Kind = "activity-name"
	// KindEventName is a start/end/intermediate event name attribute.
	KindEventName Kind = "event-name"
	// KindGatewayName is a gateway name attribute.
	KindGatewayName Kind = "gateway-name"
	// KindLaneName is a lane or participant name attribute.
	KindLaneName Kind = "lane-name"
	// KindPlaceLabel is a Petri-net place label.
	KindPlaceLabel Kind = "place-label"
	// KindTransitionLabel is a Petri-net transition label.
	KindTransitionLabel Kind = "transition-label"
)

// Term is a single raw extracted label before filtering.
// Discovery order is preserved by the extractors.
type Term struct {
	Text string
	Kind Kind
}
