package chi

import (
	domsearch "github.com/woped/rag/internal/domain/search"
	documentuc "github.com/woped/rag/internal/usecase/document"
)

// Error codes returned to clients.
const (
	codeBadRequest       = "bad_request"
	codeValidation       = "validation_failed"
	codeEmptyPrompt      = "empty_prompt"
	codeDocNotFound      = "document_not_found"
	codeEmbeddingFailed  = "embedding_provider_error"
	codeInternal         = "internal_error"
	codeUnauthorized     = "unauthorized"
	codeUnsupportedWrite = "unsupported_media_type"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type enrichRequest struct {
	Prompt  string `json:"prompt"`
	Diagram string `json:"diagram,omitempty"`
}

type enrichResponse struct {
	EnrichedPrompt string `json:"enriched_prompt"`
}

type documentRequest struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type documentResponse struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type addResponse struct {
	Added int `json:"added"`
}

type uploadResponse struct {
	File   string `json:"file"`
	Chunks int    `json:"chunks"`
}

type searchResultItem struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type searchResponse struct {
	Results []searchResultItem `json:"results"`
}

type healthResponse struct {
	Status string                 `json:"status"`
	Checks map[string]healthCheck `json:"checks"`
}

type healthCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func inputFromRequest(req documentRequest) documentuc.Input {
	return documentuc.Input{
		ID:      req.ID,
		Content: req.Text,
		Meta:    req.Metadata,
	}
}

func searchResultsToResponse(results []domsearch.Result) searchResponse {
	items := make([]searchResultItem, len(results))
	for i, r := range results {
		items[i] = searchResultItem{
			ID:       r.ID(),
			Text:     r.Content(),
			Score:    r.Score(),
			Metadata: r.Meta(),
		}
	}
	return searchResponse{Results: items}
}
