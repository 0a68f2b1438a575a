package provider

import (
	"context"
	"techbot/internal/domain/dto"
)

type IGenerationProvider interface {
	GenerateStructured(ctx context.Context, prompt string, schema *dto.GeminiSchema) (string, error)
	EmbedText(ctx context.Context, text string) ([]float64, error)
}
