// Package vecstore implements the swappable vector index backends.
package vecstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sandevgo/wayfarer/internal/config"
	"github.com/sandevgo/wayfarer/internal/core"
)

// Chroma talks to a ChromaDB server over its v1 HTTP API. The collection
// is created on first use with cosine distance, which the similarity
// conversion downstream depends on.
type Chroma struct {
	client     *http.Client
	baseURL    string
	collection string

	mu           sync.Mutex
	collectionID string
}

func NewChroma(cfg *config.ChromaConfig) *Chroma {
	return &Chroma{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:    cfg.BaseURL,
		collection: cfg.Collection,
	}
}

func (c *Chroma) ensureCollection(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.collectionID != "" {
		return c.collectionID, nil
	}

	payload := map[string]any{
		"name":          c.collection,
		"get_or_create": true,
		"metadata": map[string]any{
			"hnsw:space": "cosine",
		},
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, "/api/v1/collections", payload, &created); err != nil {
		return "", fmt.Errorf("get or create collection: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("get or create collection: empty id for %q", c.collection)
	}

	c.collectionID = created.ID
	return c.collectionID, nil
}

func (c *Chroma) Query(ctx context.Context, vector []float32, topK int, filter map[string]string) (core.QueryResult, error) {
	id, err := c.ensureCollection(ctx)
	if err != nil {
		return core.QueryResult{}, err
	}

	payload := map[string]any{
		"query_embeddings": [][]float32{vector},
		"n_results":        topK,
		"include":          []string{"documents", "metadatas", "distances"},
	}
	if len(filter) > 0 {
		where := make(map[string]any, len(filter))
		for k, v := range filter {
			where[k] = v
		}
		payload["where"] = where
	}

	// Chroma nests every result field one level per query embedding.
	var raw struct {
		IDs       [][]string         `json:"ids"`
		Documents [][]string         `json:"documents"`
		Metadatas [][]map[string]any `json:"metadatas"`
		Distances [][]float64        `json:"distances"`
	}
	if err := c.doJSON(ctx, "/api/v1/collections/"+id+"/query", payload, &raw); err != nil {
		return core.QueryResult{}, fmt.Errorf("query collection: %w", err)
	}

	result := core.QueryResult{}
	if len(raw.IDs) > 0 {
		result.IDs = raw.IDs[0]
	}
	if len(raw.Documents) > 0 {
		result.Documents = raw.Documents[0]
	}
	if len(raw.Distances) > 0 {
		result.Distances = raw.Distances[0]
	}
	if len(raw.Metadatas) > 0 {
		for _, meta := range raw.Metadatas[0] {
			result.Metadatas = append(result.Metadatas, stringifyMetadata(meta))
		}
	}
	return result, nil
}

func (c *Chroma) Upsert(ctx context.Context, docs []core.Document) error {
	if len(docs) == 0 {
		return nil
	}

	id, err := c.ensureCollection(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, len(docs))
	embeddings := make([][]float32, len(docs))
	documents := make([]string, len(docs))
	metadatas := make([]map[string]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
		embeddings[i] = doc.Vector
		documents[i] = doc.Text
		metadatas[i] = doc.Metadata
	}

	payload := map[string]any{
		"ids":        ids,
		"embeddings": embeddings,
		"documents":  documents,
		"metadatas":  metadatas,
	}
	if err := c.doJSON(ctx, "/api/v1/collections/"+id+"/upsert", payload, nil); err != nil {
		return fmt.Errorf("upsert documents: %w", err)
	}
	return nil
}

func (c *Chroma) doJSON(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	}
	return nil
}

func stringifyMetadata(meta map[string]any) map[string]string {
	if meta == nil {
		return nil
	}
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}
