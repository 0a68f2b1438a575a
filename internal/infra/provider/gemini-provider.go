package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"techbot/internal/config"
	"techbot/internal/domain/dto"
	"techbot/internal/infra/logger"
)

type GeminiProvider struct {
	Logger          *logger.Logger
	HttpClient      *http.Client
	BaseURL         string
	APIKey          string
	GenerationModel string
	EmbeddingModel  string
	EmbeddingDims   int
}

func NewGeminiProvider(logger *logger.Logger, httpClient *http.Client) *GeminiProvider {
	return &GeminiProvider{
		Logger:          logger,
		HttpClient:      httpClient,
		BaseURL:         config.GetEnvOrDefault("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta"),
		APIKey:          config.GetEnv("GEMINI_API_KEY"),
		GenerationModel: config.GetEnvOrDefault("GEMINI_GENERATION_MODEL", "gemini-2.5-flash"),
		EmbeddingModel:  config.GetEnvOrDefault("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001"),
		EmbeddingDims:   config.GetEnvInt("GEMINI_EMBEDDING_DIMS", 3072),
	}
}

// GenerateStructured asks the model for JSON constrained to the given
// response schema and returns the raw JSON text of the first candidate.
func (th *GeminiProvider) GenerateStructured(ctx context.Context, prompt string, schema *dto.GeminiSchema) (string, error) {
	payload := dto.GeminiGenerateRequest{
		Contents: []dto.GeminiContent{
			{Parts: []dto.GeminiPart{{Text: prompt}}},
		},
		GenerationConfig: &dto.GeminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", th.BaseURL, th.GenerationModel)
	body, err := th.post(ctx, url, payload)
	if err != nil {
		return "", err
	}

	var response dto.GeminiGenerateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to unmarshal generation response: %s", err.Error()))
		return "", fmt.Errorf("failed to unmarshal generation response: %w", err)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generation response contains no candidates")
	}

	return response.Candidates[0].Content.Parts[0].Text, nil
}

func (th *GeminiProvider) EmbedText(ctx context.Context, text string) ([]float64, error) {
	payload := dto.GeminiEmbedRequest{
		Content:              dto.GeminiContent{Parts: []dto.GeminiPart{{Text: text}}},
		OutputDimensionality: th.EmbeddingDims,
	}

	url := fmt.Sprintf("%s/models/%s:embedContent", th.BaseURL, th.EmbeddingModel)
	body, err := th.post(ctx, url, payload)
	if err != nil {
		return nil, err
	}

	var response dto.GeminiEmbedResponse
	if err := json.Unmarshal(body, &response); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to unmarshal embedding response: %s", err.Error()))
		return nil, fmt.Errorf("failed to unmarshal embedding response: %w", err)
	}

	if len(response.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embedding response contains no values")
	}

	return response.Embedding.Values, nil
}

func (th *GeminiProvider) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to marshal payload %v", err))
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to create HTTP request %v", err))
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", th.APIKey)

	res, err := th.HttpClient.Do(req)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("HTTP request failed %v", err))
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(res.Body)
		th.Logger.Error(fmt.Sprintf("Unexpected HTTP status %s response_body %s", res.Status, string(body)))
		return nil, fmt.Errorf("unexpected HTTP status: %s", res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to read response body %v", err))
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
