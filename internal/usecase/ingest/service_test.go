package ingest

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/woped/rag/internal/usecase/document"
)

type mockLoader struct {
	loadFileFn  func(path string) (string, error)
	listFilesFn func(dir string) ([]string, error)
}

func (m *mockLoader) LoadFile(path string) (string, error) {
	if m.loadFileFn != nil {
		return m.loadFileFn(path)
	}
	return "", nil
}

func (m *mockLoader) ListFiles(dir string) ([]string, error) {
	if m.listFilesFn != nil {
		return m.listFilesFn(dir)
	}
	return nil, nil
}

type mockIndexer struct {
	addBatchFn     func(ctx context.Context, inputs []document.Input) error
	deleteByPrefFn func(ctx context.Context, idPrefix string) (int, error)
}

func (m *mockIndexer) AddBatch(ctx context.Context, inputs []document.Input) error {
	if m.addBatchFn != nil {
		return m.addBatchFn(ctx, inputs)
	}
	return nil
}

func (m *mockIndexer) DeleteByIDPrefix(ctx context.Context, idPrefix string) (int, error) {
	if m.deleteByPrefFn != nil {
		return m.deleteByPrefFn(ctx, idPrefix)
	}
	return 0, nil
}

func newTestService(t *testing.T) (*Service, *mockLoader, *mockIndexer) {
	t.Helper()
	loader := &mockLoader{}
	indexer := &mockIndexer{}
	svc := New(loader, indexer, NewSentenceChunker(2, 0), zap.NewNop())
	return svc, loader, indexer
}

func TestIndexFile(t *testing.T) {
	svc, loader, indexer := newTestService(t)

	loader.loadFileFn = func(_ string) (string, error) {
		return "First one. Second one. Third one.", nil
	}

	var deletedPrefix string
	indexer.deleteByPrefFn = func(_ context.Context, idPrefix string) (int, error) {
		deletedPrefix = idPrefix
		return 1, nil
	}

	var gotInputs []document.Input
	indexer.addBatchFn = func(_ context.Context, inputs []document.Input) error {
		gotInputs = inputs
		return nil
	}

	n, err := svc.IndexFile(context.Background(), "/data/handbook.pdf")
	if err != nil {
		t.Fatalf("IndexFile: %v", err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
	if deletedPrefix != "handbook.pdf:" {
		t.Errorf("deletedPrefix = %q", deletedPrefix)
	}
	if len(gotInputs) != 2 {
		t.Fatalf("inputs = %d, want 2", len(gotInputs))
	}
	if gotInputs[0].ID != "handbook.pdf:0" || gotInputs[1].ID != "handbook.pdf:1" {
		t.Errorf("ids = %q, %q", gotInputs[0].ID, gotInputs[1].ID)
	}
	if gotInputs[0].Meta["source"] != "handbook.pdf" {
		t.Errorf("meta = %v", gotInputs[0].Meta)
	}
}

func TestIndexFile_EmptyPDF(t *testing.T) {
	svc, loader, indexer := newTestService(t)

	loader.loadFileFn = func(_ string) (string, error) { return "   ", nil }

	addCalled := false
	indexer.addBatchFn = func(_ context.Context, _ []document.Input) error {
		addCalled = true
		return nil
	}

	n, err := svc.IndexFile(context.Background(), "/data/blank.pdf")
	if err != nil {
		t.Fatalf("IndexFile: %v", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
	if addCalled {
		t.Error("AddBatch should not be called for empty text")
	}
}

func TestIndexFile_LoadError(t *testing.T) {
	svc, loader, _ := newTestService(t)

	wantErr := errors.New("broken file")
	loader.loadFileFn = func(_ string) (string, error) { return "", wantErr }

	_, err := svc.IndexFile(context.Background(), "/data/broken.pdf")
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestIndexDirectory_SkipsFailures(t *testing.T) {
	svc, loader, indexer := newTestService(t)

	loader.listFilesFn = func(_ string) ([]string, error) {
		return []string{"/data/good.pdf", "/data/bad.pdf"}, nil
	}
	loader.loadFileFn = func(path string) (string, error) {
		if path == "/data/bad.pdf" {
			return "", errors.New("corrupt")
		}
		return "Only sentence here.", nil
	}
	indexer.addBatchFn = func(_ context.Context, _ []document.Input) error { return nil }

	n, err := svc.IndexDirectory(context.Background(), "/data")
	if err != nil {
		t.Fatalf("IndexDirectory: %v", err)
	}
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
}
