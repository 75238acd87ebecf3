package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/wayfarer/pkg/log"
)

type EmbeddingConfig struct {
	APIKey     string `env:"OPENAI_API_KEY"`
	BaseURL    string `env:"EMBEDDING_BASE_URL" envDefault:"https://api.openai.com"`
	Model      string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	Dimensions int    `env:"EMBEDDING_DIMENSIONS" envDefault:"1536"`
}

func NewEmbeddingConfig(ctx context.Context) *EmbeddingConfig {
	cfg := &EmbeddingConfig{}
	if err := env.Parse(cfg); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Embedding config")
	}
	return cfg
}
