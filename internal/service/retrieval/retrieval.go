// Package retrieval runs similarity-filtered semantic search over the
// vector index. It never fails a conversation turn: any embedding or
// index error degrades to an empty result.
package retrieval

import (
	"context"

	"github.com/sandevgo/wayfarer/internal/core"
	"github.com/sandevgo/wayfarer/pkg/log"
)

// Candidate is one retrieved document with its cosine distance.
type Candidate struct {
	ID       string
	Document string
	Metadata map[string]string
	Distance float64
}

// Similarity converts cosine distance to similarity.
func (c Candidate) Similarity() float64 {
	return 1 - c.Distance
}

type Service struct {
	embedder  core.Embedder
	index     core.VectorIndex
	threshold float64
}

func NewService(embedder core.Embedder, index core.VectorIndex, threshold float64) *Service {
	return &Service{
		embedder:  embedder,
		index:     index,
		threshold: threshold,
	}
}

// Search embeds the query, over-fetches 2k candidates to survive
// post-filtering, drops everything below the similarity threshold and
// returns at most k candidates in index order (most similar first).
func (s *Service) Search(ctx context.Context, query string, k int, filter map[string]string) []Candidate {
	logger := log.FromCtx(ctx)

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn().Err(err).Msg("embed query failed, skipping retrieval")
		return nil
	}

	result, err := s.index.Query(ctx, vector, 2*k, filter)
	if err != nil {
		logger.Warn().Err(err).Msg("vector index query failed, skipping retrieval")
		return nil
	}

	var candidates []Candidate
	filtered := 0
	for i, distance := range result.Distances {
		if len(candidates) == k {
			break
		}
		if 1-distance < s.threshold {
			filtered++
			continue
		}
		c := Candidate{Distance: distance}
		if i < len(result.IDs) {
			c.ID = result.IDs[i]
		}
		if i < len(result.Documents) {
			c.Document = result.Documents[i]
		}
		if i < len(result.Metadatas) {
			c.Metadata = result.Metadatas[i]
		}
		candidates = append(candidates, c)
	}

	logger.Debug().
		Int("returned", len(candidates)).
		Int("below_threshold", filtered).
		Float64("threshold", s.threshold).
		Msg("retrieval complete")

	return candidates
}
