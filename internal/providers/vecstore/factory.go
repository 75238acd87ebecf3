package vecstore

import (
	"context"
	"fmt"

	"github.com/sandevgo/wayfarer/internal/config"
	"github.com/sandevgo/wayfarer/internal/core"
	"github.com/sandevgo/wayfarer/pkg/log"
)

// NewIndex creates the configured vector index backend.
func NewIndex(ctx context.Context, cfg *config.AppConfig) (core.VectorIndex, error) {
	logger := log.FromCtx(ctx)

	switch cfg.VectorBackend {
	case "chroma":
		chromaCfg := config.NewChromaConfig(ctx)
		logger.Info().
			Str("backend", "chroma").
			Str("url", chromaCfg.BaseURL).
			Str("collection", chromaCfg.Collection).
			Msg("starting vector index")
		return NewChroma(chromaCfg), nil
	case "weaviate":
		weaviateCfg := config.NewWeaviateConfig(ctx)
		logger.Info().
			Str("backend", "weaviate").
			Str("host", weaviateCfg.Host).
			Str("class", weaviateCfg.Class).
			Msg("starting vector index")
		return NewWeaviate(weaviateCfg)
	default:
		return nil, fmt.Errorf("unknown vector backend: %s", cfg.VectorBackend)
	}
}
