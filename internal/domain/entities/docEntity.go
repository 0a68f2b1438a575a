package entities

// Doc is a reference document with its embedding, owned by the document
// store and read-only to the chat pipeline.
type Doc struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Content   string    `json:"content" bson:"content"`
	Embedding []float64 `json:"embedding" bson:"embedding"`
}

// RetrievalResult is a scored document returned by vector search,
// discarded after the response is assembled.
type RetrievalResult struct {
	Content string  `json:"content" bson:"content"`
	Score   float64 `json:"score" bson:"score"`
}
