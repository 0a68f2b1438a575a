package services

import (
	"context"
	"encoding/json"
	"fmt"
	"techbot/internal/domain/dto"
	"techbot/internal/infra/logger"
	"techbot/internal/infra/provider"
)

const FallbackAnswer = "I don't know"

const maxFutureActions = 3

type GenerationService struct {
	Logger   *logger.Logger
	Provider provider.IGenerationProvider
}

func NewGenerationService(logger *logger.Logger, generationProvider provider.IGenerationProvider) *GenerationService {
	return &GenerationService{Logger: logger, Provider: generationProvider}
}

// Generate invokes the model with the structured output schema. Transport,
// status and parse failures all degrade to the fixed fallback output; the
// request itself still succeeds.
func (gs *GenerationService) Generate(ctx context.Context, prompt string) dto.GenerationOutput {
	raw, err := gs.Provider.GenerateStructured(ctx, prompt, responseSchema())
	if err != nil {
		gs.Logger.Error(fmt.Sprintf("Generation call failed, using fallback: %s", err.Error()))
		return fallbackOutput()
	}

	var items []dto.GenerationOutput
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		gs.Logger.Error(fmt.Sprintf("Generation output is not valid JSON, using fallback: %s", err.Error()))
		return fallbackOutput()
	}
	if len(items) == 0 || len(items[0].Answer) == 0 {
		gs.Logger.Error("Generation output is empty, using fallback")
		return fallbackOutput()
	}

	output := items[0]
	if output.FutureActions == nil {
		output.FutureActions = []string{}
	}
	if len(output.FutureActions) > maxFutureActions {
		output.FutureActions = output.FutureActions[:maxFutureActions]
	}
	return output
}

func fallbackOutput() dto.GenerationOutput {
	return dto.GenerationOutput{
		Answer:        []string{FallbackAnswer},
		FutureActions: []string{},
	}
}

// responseSchema is the output contract sent to the model: an array of
// objects carrying ordered answer lines and up to three next-step labels.
func responseSchema() *dto.GeminiSchema {
	return &dto.GeminiSchema{
		Type: "ARRAY",
		Items: &dto.GeminiSchema{
			Type: "OBJECT",
			Properties: map[string]*dto.GeminiSchema{
				"answer": {
					Type:  "ARRAY",
					Items: &dto.GeminiSchema{Type: "STRING"},
				},
				"future_actions": {
					Type:     "ARRAY",
					Items:    &dto.GeminiSchema{Type: "STRING"},
					MaxItems: maxFutureActions,
				},
			},
			PropertyOrdering: []string{"answer", "future_actions"},
		},
	}
}
