package search

import (
	"context"
	"errors"
	"testing"

	"github.com/woped/rag/internal/db"
)

type mockStore struct {
	searchKNNFn func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func TestSearchKNN(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, "rag:")

	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		if q.IndexName != "rag:doc:idx" {
			t.Errorf("index = %q", q.IndexName)
		}
		if q.K != 3 {
			t.Errorf("k = %d, want 3", q.K)
		}
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{
					Key:   "rag:doc:doc-1",
					Score: 0.92,
					Fields: map[string]string{
						"__content": "first chunk",
						"__vector":  "binary",
						"source":    "handbook.pdf",
					},
				},
				{
					Key:    "rag:doc:doc-2",
					Score:  0.71,
					Fields: map[string]string{"__content": "second chunk"},
				},
			},
		}, nil
	}

	results, err := repo.SearchKNN(context.Background(), []float32{0.1, 0.2}, 3)
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].ID() != "doc-1" {
		t.Errorf("ID = %q, want doc-1", results[0].ID())
	}
	if results[0].Score() != 0.92 {
		t.Errorf("Score = %v", results[0].Score())
	}
	if results[0].Content() != "first chunk" {
		t.Errorf("Content = %q", results[0].Content())
	}
	if results[0].Meta()["source"] != "handbook.pdf" {
		t.Errorf("Meta = %v", results[0].Meta())
	}
	if _, ok := results[0].Meta()["__vector"]; ok {
		t.Error("reserved field leaked into metadata")
	}
}

func TestSearchKNN_Empty(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, "rag:")

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return &db.SearchResult{Total: 0}, nil
	}

	results, err := repo.SearchKNN(context.Background(), []float32{0.1}, 5)
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestSearchKNN_StoreError(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, "rag:")

	wantErr := errors.New("connection refused")
	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return nil, wantErr
	}

	_, err := repo.SearchKNN(context.Background(), []float32{0.1}, 5)
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}
