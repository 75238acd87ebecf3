package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/wayfarer/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"WAYFARER_RUNTIME_PATH" envDefault:".wayfarer"`
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8080"`

	// Allow selecting the provider
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"openai"`
	ChatModel   string `env:"CHAT_MODEL" envDefault:"gpt-4.1-nano"`

	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey    string `env:"OPENROUTER_API_KEY"`
	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`

	// Reply sampling
	Temperature float64 `env:"CHAT_TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int     `env:"CHAT_MAX_TOKENS" envDefault:"2000"`

	// Context Management
	ContextWindowSize  int `env:"CONTEXT_WINDOW_SIZE" envDefault:"10"`
	SummarizeThreshold int `env:"SUMMARIZE_THRESHOLD" envDefault:"15"`

	// Retrieval
	RAGTopK                int     `env:"RAG_TOP_K" envDefault:"10"`
	RAGSimilarityThreshold float64 `env:"RAG_SIMILARITY_THRESHOLD" envDefault:"0.4"`

	// Vector index backend: chroma | weaviate
	VectorBackend string `env:"VECTOR_BACKEND" envDefault:"chroma"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "wayfarer.db")
}
