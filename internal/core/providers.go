package core

import "context"

// AIProvider generates a completion for the given history.
type AIProvider interface {
	Chat(ctx context.Context, history []Message, opts ChatOptions) (string, error)
}

// Embedder converts text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Document is a knowledge-base entry stored in the vector index.
type Document struct {
	ID       string
	Text     string
	Metadata map[string]string
	Vector   []float32
}

// QueryResult holds index hits in the order the index returned them.
// Slices are parallel.
type QueryResult struct {
	IDs       []string
	Documents []string
	Metadatas []map[string]string
	Distances []float64
}

// VectorIndex is the swappable semantic search backend.
type VectorIndex interface {
	// Query returns up to topK nearest documents, optionally restricted to
	// entries whose metadata matches every filter key.
	Query(ctx context.Context, vector []float32, topK int, filter map[string]string) (QueryResult, error)
	Upsert(ctx context.Context, docs []Document) error
}
