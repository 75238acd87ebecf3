package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/wayfarer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(serverURL string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    serverURL,
		APIKey:     "test-key",
		Model:      "test-model",
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	})
}

func TestChat(t *testing.T) {
	var gotPayload map[string]any
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "hello!"}},
			},
		})
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	reply, err := provider.Chat(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "hi"},
	}, core.ChatOptions{Temperature: 0.7, MaxTokens: 2000})

	require.NoError(t, err)
	assert.Equal(t, "hello!", reply)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotPayload["model"])
	assert.InDelta(t, 0.7, gotPayload["temperature"].(float64), 1e-9)
	assert.EqualValues(t, 2000, gotPayload["max_tokens"])
}

func TestChatOmitsZeroOptions(t *testing.T) {
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	_, err := provider.Chat(context.Background(), nil, core.ChatOptions{})
	require.NoError(t, err)

	_, hasTemp := gotPayload["temperature"]
	_, hasMax := gotPayload["max_tokens"]
	assert.False(t, hasTemp)
	assert.False(t, hasMax)
}

func TestChatHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	_, err := provider.Chat(context.Background(), nil, core.ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 429")
}

func TestChatEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	_, err := provider.Chat(context.Background(), nil, core.ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty choices")
}
