package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"techbot/internal/domain/dto"
	"techbot/internal/infra/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(serverURL string) *GeminiProvider {
	return &GeminiProvider{
		Logger:          logger.NewLogger(context.Background(), false),
		HttpClient:      &http.Client{},
		BaseURL:         serverURL,
		APIKey:          "test-key",
		GenerationModel: "gemini-2.5-flash",
		EmbeddingModel:  "gemini-embedding-001",
		EmbeddingDims:   3072,
	}
}

func TestGenerateStructured(t *testing.T) {
	var gotRequest dto.GeminiGenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": `[{"answer":["ok"]}]`}}}},
			},
		})
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	schema := &dto.GeminiSchema{Type: "ARRAY"}

	raw, err := provider.GenerateStructured(context.Background(), "the prompt", schema)
	require.NoError(t, err)
	assert.Equal(t, `[{"answer":["ok"]}]`, raw)

	require.Len(t, gotRequest.Contents, 1)
	assert.Equal(t, "the prompt", gotRequest.Contents[0].Parts[0].Text)
	require.NotNil(t, gotRequest.GenerationConfig)
	assert.Equal(t, "application/json", gotRequest.GenerationConfig.ResponseMimeType)
	assert.Equal(t, "ARRAY", gotRequest.GenerationConfig.ResponseSchema.Type)
}

func TestGenerateStructuredNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).GenerateStructured(context.Background(), "p", nil)
	assert.Error(t, err)
}

func TestGenerateStructuredHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).GenerateStructured(context.Background(), "p", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected HTTP status")
}

func TestEmbedText(t *testing.T) {
	var gotRequest dto.GeminiEmbedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/gemini-embedding-001:embedContent", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": map[string]interface{}{"values": []float64{0.1, 0.2, 0.3}},
		})
	}))
	defer server.Close()

	vector, err := newTestProvider(server.URL).EmbedText(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vector)
	assert.Equal(t, "some text", gotRequest.Content.Parts[0].Text)
	assert.Equal(t, 3072, gotRequest.OutputDimensionality)
}

func TestEmbedTextEmptyValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"embedding": map[string]interface{}{"values": []float64{}}})
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).EmbedText(context.Background(), "some text")
	assert.Error(t, err)
}
