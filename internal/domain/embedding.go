package domain

// EmbeddingResult is a vector plus the provider's token usage for the call.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}
