package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/wayfarer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmbedder(serverURL string, dims int) *OpenAI {
	return NewOpenAI(&config.EmbeddingConfig{
		APIKey:     "test-key",
		BaseURL:    serverURL,
		Model:      "text-embedding-3-small",
		Dimensions: dims,
	})
}

func TestEmbed(t *testing.T) {
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/embeddings", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float32{0.1, 0.2, 0.3}},
			},
		})
	}))
	defer server.Close()

	embedder := newTestEmbedder(server.URL, 3)
	vector, err := embedder.Embed(context.Background(), "museums in Paris")
	require.NoError(t, err)

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
	assert.Equal(t, "text-embedding-3-small", gotPayload["model"])
	assert.Equal(t, "museums in Paris", gotPayload["input"])
}

func TestEmbedDimensionMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float32{0.1, 0.2}},
			},
		})
	}))
	defer server.Close()

	embedder := newTestEmbedder(server.URL, 1536)
	_, err := embedder.Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimensions")
}

func TestEmbedHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	embedder := newTestEmbedder(server.URL, 0)
	_, err := embedder.Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 401")
}
