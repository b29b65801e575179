package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/woped/rag/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	doc, err := New("handbook.pdf:0", "some content", map[string]string{"source": "handbook.pdf"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if doc.ID() != "handbook.pdf:0" {
		t.Errorf("ID = %q", doc.ID())
	}
	if doc.Content() != "some content" {
		t.Errorf("Content = %q", doc.Content())
	}
	if doc.Meta()["source"] != "handbook.pdf" {
		t.Errorf("Meta = %v", doc.Meta())
	}
	if doc.Vector() != nil {
		t.Errorf("Vector = %v, want nil", doc.Vector())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		content string
		meta    map[string]string
	}{
		{name: "empty id", id: "", content: "text"},
		{name: "id too long", id: strings.Repeat("a", 257), content: "text"},
		{name: "id with spaces", id: "doc 1", content: "text"},
		{name: "id with slash", id: "doc/1", content: "text"},
		{name: "empty content", id: "doc-1", content: ""},
		{name: "content too large", id: "doc-1", content: strings.Repeat("x", MaxContentSize+1)},
		{name: "reserved meta key", id: "doc-1", content: "text", meta: map[string]string{"__content": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.content, tt.meta)
			if !errors.Is(err, domain.ErrInvalidDocument) {
				t.Errorf("err = %v, want ErrInvalidDocument", err)
			}
		})
	}
}

func TestNew_CopiesMeta(t *testing.T) {
	meta := map[string]string{"source": "a"}
	doc, err := New("doc-1", "text", meta)
	if err != nil {
		t.Fatal(err)
	}

	meta["source"] = "mutated"
	if doc.Meta()["source"] != "a" {
		t.Error("metadata not copied on construction")
	}
}

func TestWithVector(t *testing.T) {
	doc, err := New("doc-1", "text", nil)
	if err != nil {
		t.Fatal(err)
	}

	withVec := doc.WithVector([]float32{0.1, 0.2})
	if len(withVec.Vector()) != 2 {
		t.Errorf("Vector = %v", withVec.Vector())
	}
	if doc.Vector() != nil {
		t.Error("original document mutated")
	}
}
