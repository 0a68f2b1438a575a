package Iservices

import (
	"context"
	"techbot/internal/domain/dto"
)

// IGenerationService degrades to a fixed fallback output on any failure;
// it never returns an error to the caller.
type IGenerationService interface {
	Generate(ctx context.Context, prompt string) dto.GenerationOutput
}
