package diagram

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinTermLength is the minimum significant length (in runes) of a term
// after trimming.
const MinTermLength = 2

// Rules is the static filtering policy: technical-ID shape patterns and the
// structural stoplist. Compiled once at startup and shared read-only across
// all extraction calls.
type Rules struct {
	idPatterns []*regexp.Regexp
	stoplist   map[string]struct{}
}

// NewRules compiles a rule set. ID patterns are matched against the
// lowercased term, stopwords are compared case-insensitively per token.
func NewRules(idPatterns, stopwords []string) (*Rules, error) {
	r := &Rules{
		idPatterns: make([]*regexp.Regexp, 0, len(idPatterns)),
		stoplist:   make(map[string]struct{}, len(stopwords)),
	}
	for _, p := range idPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile id pattern %q: %w", p, err)
		}
		r.idPatterns = append(r.idPatterns, re)
	}
	for _, w := range stopwords {
		r.stoplist[strings.ToLower(w)] = struct{}{}
	}
	return r, nil
}

// DefaultRules returns the production rule set for WoPeD-style BPMN and
// PNML exports. The ID shapes are deliberately conservative: each pattern
// is anchored to the whole (single-token) term, so multi-word labels that
// happen to contain digits are never discarded.
func DefaultRules() *Rules {
	r, err := NewRules(
		[]string{
			`^[a-z]+_[a-z0-9]+$`, // tool-generated node ids: task_12j0pib, flow_0h3x2
			`^[a-z]\d+$`,         // short node ids: p1, t3
			`^[a-z]\d+_op_\d+$`,  // operator ids: t4_op_1
			`^[xy]\d+$`,          // layout coordinates
			`^\d+$`,
			`^noid$`,
		},
		[]string{
			// flow structure
			"start", "end", "gateway", "sequence", "flow",
			"startevent", "endevent", "fork", "merge", "split", "join",
			"and", "xor",
			// Petri-net structure
			"place", "transition", "arc", "token",
			// process meta
			"process", "diagram", "subprocess",
			// tool vocabulary and schema-URL fragments
			"woped", "designer", "version", "op",
			"http", "www", "org", "hu", "berlin",
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Filter applies a rule set to raw extracted terms.
type Filter struct {
	rules *Rules
}

// NewFilter creates a filter over the given rules, falling back to
// DefaultRules when nil.
func NewFilter(rules *Rules) *Filter {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Filter{rules: rules}
}

// Apply trims and collapses whitespace, drops technical-ID shapes, then
// drops structural vocabulary, then deduplicates case-insensitively
// preserving first-seen order and original casing. ID rules must run
// before the stoplist pass: some generated ids share substrings with
// stopwords and have to be removed by shape first. Apply is idempotent.
func (f *Filter) Apply(terms []Term) []string {
	var out []string
	seen := make(map[string]struct{}, len(terms))

	for _, t := range terms {
		text := collapseWhitespace(t.Text)
		if utf8.RuneCountInString(text) < MinTermLength {
			continue
		}
		if strings.HasPrefix(text, "<") {
			// markup remnant from a broken element
			continue
		}
		if f.rules.isTechnicalID(text) {
			continue
		}
		if f.rules.isStructural(text) {
			continue
		}
		key := strings.ToLower(text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, text)
	}
	return out
}

func (r *Rules) isTechnicalID(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range r.idPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// isStructural reports whether every token of the term is stoplist
// vocabulary. Terms mixing stopwords with meaningful words are kept.
func (r *Rules) isStructural(text string) bool {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return true
	}
	for _, tok := range tokens {
		if _, ok := r.stoplist[tok]; !ok {
			return false
		}
	}
	return true
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
