package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/wayfarer/pkg/log"
)

type ChromaConfig struct {
	BaseURL    string `env:"CHROMA_URL" envDefault:"http://localhost:8000"`
	Collection string `env:"CHROMA_COLLECTION" envDefault:"travel_knowledge"`
}

func NewChromaConfig(ctx context.Context) *ChromaConfig {
	cfg := &ChromaConfig{}
	if err := env.Parse(cfg); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Chroma config")
	}
	return cfg
}

type WeaviateConfig struct {
	Host   string `env:"WEAVIATE_HOST" envDefault:"localhost:8080"`
	Scheme string `env:"WEAVIATE_SCHEME" envDefault:"http"`
	Class  string `env:"WEAVIATE_CLASS" envDefault:"TravelKnowledge"`
}

func NewWeaviateConfig(ctx context.Context) *WeaviateConfig {
	cfg := &WeaviateConfig{}
	if err := env.Parse(cfg); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Weaviate config")
	}
	return cfg
}
