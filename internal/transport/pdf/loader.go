// Package pdf extracts plain text from PDF files for ingestion.
package pdf

import (
	"fmt"
	"path/filepath"
	"strings"

	ltpdf "github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Loader reads PDF files from disk and extracts their text content.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a PDF loader.
func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{logger: logger}
}

// LoadFile extracts the plain text of a single PDF file.
// Pages that fail to decode are skipped rather than failing the whole file.
func (l *Loader) LoadFile(path string) (string, error) {
	f, r, err := ltpdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	total := r.NumPage()

	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			l.logger.Warn("skip unreadable pdf page",
				zap.String("file", filepath.Base(path)),
				zap.Int("page", i),
				zap.Error(err))
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// ListFiles returns the PDF files in a directory, sorted by name.
func (l *Loader) ListFiles(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}
	return paths, nil
}
