package rag

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// AugmentQuery folds extracted diagram terms into the user's retrieval
// query. With no terms the original query is returned byte-for-byte.
// Terms are appended in the order they were discovered, space separated;
// a term already present as a whole word in the original query is skipped
// (case-insensitive) to avoid query bloat. No truncation is applied here:
// length limits are the retrieval backend's concern.
func AugmentQuery(original string, terms []string) string {
	if len(terms) == 0 {
		return original
	}

	out := original
	for _, term := range terms {
		if term == "" || containsWholeWord(original, term) {
			continue
		}
		if out != "" {
			out += " "
		}
		out += term
	}
	return out
}

// containsWholeWord reports whether phrase occurs in s bounded by
// non-alphanumeric runes on both sides, case-insensitively.
func containsWholeWord(s, phrase string) bool {
	ls := strings.ToLower(s)
	lp := strings.ToLower(phrase)

	for from := 0; from+len(lp) <= len(ls); {
		i := strings.Index(ls[from:], lp)
		if i < 0 {
			return false
		}
		i += from
		if boundaryBefore(ls, i) && boundaryAfter(ls, i+len(lp)) {
			return true
		}
		from = i + 1
	}
	return false
}

func boundaryBefore(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:idx])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, idx int) bool {
	if idx >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[idx:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
