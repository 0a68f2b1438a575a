package Iservices

import (
	"context"
	"techbot/internal/domain/dto"
)

// ICacheCoordinator mediates the two cache namespaces. Lookups report a
// store failure as a miss; stores are fire-and-forget and never surface
// errors to the request path.
type ICacheCoordinator interface {
	QueryHash(query string) string
	ResponseLookup(ctx context.Context, hash string) (dto.GenerationOutput, bool)
	ResponseStore(hash string, output dto.GenerationOutput)
	EmbeddingLookup(ctx context.Context, hash string) ([]float64, bool)
	EmbeddingStore(hash string, vector []float64)
}
