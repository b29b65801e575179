package rag

import "testing"

func TestAugmentQuery_IdentityFallback(t *testing.T) {
	for _, q := range []string{"", "order status", "How is an application handled?"} {
		if got := AugmentQuery(q, nil); got != q {
			t.Errorf("AugmentQuery(%q, nil) = %q, want original", q, got)
		}
		if got := AugmentQuery(q, []string{}); got != q {
			t.Errorf("AugmentQuery(%q, []) = %q, want original", q, got)
		}
	}
}

func TestAugmentQuery_AppendsInOrder(t *testing.T) {
	got := AugmentQuery("order status", []string{"Order Received", "Ship Order"})
	want := "order status Order Received Ship Order"
	if got != want {
		t.Errorf("AugmentQuery() = %q, want %q", got, want)
	}
}

func TestAugmentQuery_SkipsWholeWordDuplicates(t *testing.T) {
	tests := []struct {
		name     string
		original string
		terms    []string
		want     string
	}{
		{
			name:     "exact phrase already present",
			original: "when is the invoice approved",
			terms:    []string{"invoice"},
			want:     "when is the invoice approved",
		},
		{
			name:     "case insensitive",
			original: "Submit Order now",
			terms:    []string{"submit order"},
			want:     "Submit Order now",
		},
		{
			name:     "substring of a longer word is not a duplicate",
			original: "reorder everything",
			terms:    []string{"order"},
			want:     "reorder everything order",
		},
		{
			name:     "mixed",
			original: "order status",
			terms:    []string{"order", "Order Received"},
			want:     "order status Order Received",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AugmentQuery(tt.original, tt.terms); got != tt.want {
				t.Errorf("AugmentQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAugmentQuery_EmptyOriginal(t *testing.T) {
	got := AugmentQuery("", []string{"Order Received"})
	if got != "Order Received" {
		t.Errorf("AugmentQuery() = %q, want %q", got, "Order Received")
	}
}
