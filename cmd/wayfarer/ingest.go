package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sandevgo/wayfarer/internal/config"
	"github.com/sandevgo/wayfarer/internal/core"
	"github.com/sandevgo/wayfarer/internal/providers/embed"
	"github.com/sandevgo/wayfarer/internal/providers/vecstore"
	"github.com/sandevgo/wayfarer/pkg/log"
	"github.com/sandevgo/wayfarer/pkg/retry"
	"github.com/spf13/cobra"
)

var ingestBatchSize int

// ingestDocument is one entry of the input file: a pre-chunked piece of
// travel knowledge with optional metadata used for retrieval filtering.
type ingestDocument struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
}

var ingestCmd = &cobra.Command{
	Use:           "ingest <file>",
	Short:         "Load travel knowledge documents into the vector index",
	Long:          `Reads a JSON array of documents ({"text": ..., "metadata": {"city": ...}}), embeds each one and upserts them into the configured vector index.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return fmt.Errorf("init env: %w", err)
		}

		docs, err := readDocuments(args[0])
		if err != nil {
			return err
		}
		logger.Info().Int("documents", len(docs)).Str("file", args[0]).Msg("ingesting knowledge")

		appCfg := config.NewAppConfig(ctx)
		embedder := embed.NewOpenAI(config.NewEmbeddingConfig(ctx))
		index, err := vecstore.NewIndex(ctx, appCfg)
		if err != nil {
			return fmt.Errorf("init vector index: %w", err)
		}

		return ingest(ctx, embedder, index, docs, ingestBatchSize)
	},
}

func init() {
	ingestCmd.Flags().IntVar(&ingestBatchSize, "batch-size", 32, "documents per upsert batch")
	rootCmd.AddCommand(ingestCmd)
}

func readDocuments(path string) ([]ingestDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read documents file: %w", err)
	}

	var docs []ingestDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode documents file: %w", err)
	}

	for i, doc := range docs {
		if doc.Text == "" {
			return nil, fmt.Errorf("document %d has no text", i)
		}
	}
	return docs, nil
}

func ingest(ctx context.Context, embedder core.Embedder, index core.VectorIndex, docs []ingestDocument, batchSize int) error {
	logger := log.FromCtx(ctx)
	retrier := retry.NewDefaultRetrier()

	batch := make([]core.Document, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := retrier.Do(ctx, func() error { return index.Upsert(ctx, batch) }); err != nil {
			return fmt.Errorf("upsert batch: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for i, doc := range docs {
		var vector []float32
		err := retrier.Do(ctx, func() error {
			var embedErr error
			vector, embedErr = embedder.Embed(ctx, doc.Text)
			return embedErr
		})
		if err != nil {
			return fmt.Errorf("embed document %d: %w", i, err)
		}

		id := doc.ID
		if id == "" {
			id = uuid.NewString()
		}
		batch = append(batch, core.Document{
			ID:       id,
			Text:     doc.Text,
			Metadata: doc.Metadata,
			Vector:   vector,
		})

		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
			logger.Debug().Int("ingested", i+1).Msg("batch upserted")
		}
	}

	if err := flush(); err != nil {
		return err
	}

	logger.Info().Int("documents", len(docs)).Msg("ingestion complete")
	return nil
}
