package diagram

import (
	"reflect"
	"testing"
)

func raw(texts ...string) []Term {
	terms := make([]Term, len(texts))
	for i, s := range texts {
		terms[i] = Term{Text: s, Kind: KindActivityName}
	}
	return terms
}

func TestFilter_TechnicalIDs(t *testing.T) {
	f := NewFilter(nil)

	got := f.Apply(raw("task_12j0pib", "p1", "t3", "Approve Invoice"))
	want := []string{"Approve Invoice"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

func TestFilter_StructuralStoplist(t *testing.T) {
	f := NewFilter(nil)

	got := f.Apply(raw("woped", "designer", "start", "end", "Submit Order"))
	want := []string{"Submit Order"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

func TestFilter_StopwordInsideMeaningfulTermKept(t *testing.T) {
	f := NewFilter(nil)

	tests := []struct {
		term string
		keep bool
	}{
		{"Start Production Run", true}, // contains a stopword plus real words
		{"start end", false},           // reduces to stoplist tokens only
		{"Sequence Flow", false},
		{"Process Order and Ship", true},
	}
	for _, tt := range tests {
		got := f.Apply(raw(tt.term))
		if kept := len(got) == 1; kept != tt.keep {
			t.Errorf("Apply(%q) kept=%v, want keep=%v", tt.term, kept, tt.keep)
		}
	}
}

func TestFilter_Dedup(t *testing.T) {
	f := NewFilter(nil)

	got := f.Apply(raw("Submit Order", "submit order", "Submit Order"))
	want := []string{"Submit Order"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

func TestFilter_WhitespaceAndLength(t *testing.T) {
	f := NewFilter(nil)

	got := f.Apply(raw("  Review   Application ", "a", " ", ""))
	want := []string{"Review Application"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

func TestFilter_OrderPreserved(t *testing.T) {
	f := NewFilter(nil)

	got := f.Apply(raw("Zulieferung prüfen", "Bestellung anlegen", "Auftrag freigeben"))
	want := []string{"Zulieferung prüfen", "Bestellung anlegen", "Auftrag freigeben"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	f := NewFilter(nil)

	in := raw("task_12j0pib", "Approve Invoice", "start", "p1", "approve invoice", "Check Stock")
	once := f.Apply(in)
	twice := f.Apply(raw(once...))
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter not idempotent: first %v, second %v", once, twice)
	}
}

func TestFilter_DigitBearingLabelsKept(t *testing.T) {
	f := NewFilter(nil)

	got := f.Apply(raw("Check 2nd Approval", "Level 3 Support"))
	want := []string{"Check 2nd Approval", "Level 3 Support"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

func TestNewRules_InvalidPattern(t *testing.T) {
	if _, err := NewRules([]string{"("}, nil); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestFilter_CustomRules(t *testing.T) {
	rules, err := NewRules([]string{`^node-\d+$`}, []string{"internal"})
	if err != nil {
		t.Fatalf("NewRules: %v", err)
	}
	f := NewFilter(rules)

	got := f.Apply(raw("node-17", "internal", "Customer Intake"))
	want := []string{"Customer Intake"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}
