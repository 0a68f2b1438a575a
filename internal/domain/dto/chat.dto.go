package dto

import "techbot/internal/domain/entities"

type ChatRequest struct {
	Query  string `json:"query"`
	UserID string `json:"userId"`
}

type ChatResponse struct {
	Answer        []string                   `json:"answer"`
	FutureActions []string                   `json:"future_actions"`
	Context       []entities.RetrievalResult `json:"context"`
	CacheHit      bool                       `json:"cacheHit"`
}

// GenerationOutput is the structured result the model is constrained to:
// the first answer line is a summary, the rest are bullet items, and
// future actions are short next-step labels (never requests for input).
type GenerationOutput struct {
	Answer        []string `json:"answer"`
	FutureActions []string `json:"future_actions"`
}

type AddDocRequest struct {
	Content string `json:"content"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
