package vecstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/wayfarer/internal/config"
	"github.com/sandevgo/wayfarer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChromaServer(t *testing.T, queryHandler http.HandlerFunc) (*httptest.Server, *Chroma) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/collections", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "travel_knowledge", payload["name"])
		assert.Equal(t, true, payload["get_or_create"])

		_ = json.NewEncoder(w).Encode(map[string]string{"id": "col-1"})
	})
	if queryHandler != nil {
		mux.HandleFunc("/api/v1/collections/col-1/query", queryHandler)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store := NewChroma(&config.ChromaConfig{BaseURL: server.URL, Collection: "travel_knowledge"})
	return server, store
}

func TestChromaQuery(t *testing.T) {
	var gotPayload map[string]any

	_, store := newChromaServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"ids":       [][]string{{"a", "b"}},
			"documents": [][]string{{"doc a", "doc b"}},
			"metadatas": [][]map[string]any{{
				{"city": "Paris", "rank": 1},
				{"city": "Paris"},
			}},
			"distances": [][]float64{{0.1, 0.4}},
		})
	})

	result, err := store.Query(context.Background(), []float32{0.5, 0.5}, 4, map[string]string{"city": "Paris"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, result.IDs)
	assert.Equal(t, []string{"doc a", "doc b"}, result.Documents)
	assert.Equal(t, []float64{0.1, 0.4}, result.Distances)
	require.Len(t, result.Metadatas, 2)
	assert.Equal(t, "Paris", result.Metadatas[0]["city"])
	assert.Equal(t, "1", result.Metadatas[0]["rank"])

	assert.EqualValues(t, 4, gotPayload["n_results"])
	where, ok := gotPayload["where"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Paris", where["city"])
}

func TestChromaQueryNoFilter(t *testing.T) {
	var gotPayload map[string]any

	_, store := newChromaServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ids":       [][]string{{}},
			"documents": [][]string{{}},
			"metadatas": [][]map[string]any{{}},
			"distances": [][]float64{{}},
		})
	})

	_, err := store.Query(context.Background(), []float32{0.5}, 10, nil)
	require.NoError(t, err)

	_, hasWhere := gotPayload["where"]
	assert.False(t, hasWhere)
}

func TestChromaQueryServerError(t *testing.T) {
	_, store := newChromaServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := store.Query(context.Background(), []float32{0.5}, 10, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 500")
}

func TestChromaUpsert(t *testing.T) {
	var gotPayload map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/collections", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "col-1"})
	})
	mux.HandleFunc("/api/v1/collections/col-1/upsert", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := NewChroma(&config.ChromaConfig{BaseURL: server.URL, Collection: "travel_knowledge"})
	err := store.Upsert(context.Background(), []core.Document{
		{ID: "a", Text: "doc a", Metadata: map[string]string{"city": "Paris"}, Vector: []float32{0.1}},
	})
	require.NoError(t, err)

	ids, ok := gotPayload["ids"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"a"}, ids)
}

func TestChromaCollectionCreatedOnce(t *testing.T) {
	creates := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/collections", func(w http.ResponseWriter, r *http.Request) {
		creates++
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "col-1"})
	})
	mux.HandleFunc("/api/v1/collections/col-1/query", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := NewChroma(&config.ChromaConfig{BaseURL: server.URL, Collection: "travel_knowledge"})
	for i := 0; i < 3; i++ {
		_, err := store.Query(context.Background(), []float32{0.5}, 10, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, creates)
}
