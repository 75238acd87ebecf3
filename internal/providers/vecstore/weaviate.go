package vecstore

import (
	"context"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/sandevgo/wayfarer/internal/config"
	"github.com/sandevgo/wayfarer/internal/core"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

// metadataProperties are the document metadata keys stored as class
// properties alongside the text.
var metadataProperties = []string{"city", "category", "source"}

// Weaviate serves the same contract as Chroma through GraphQL
// near-vector search.
type Weaviate struct {
	client *weaviate.Client
	class  string
}

func NewWeaviate(cfg *config.WeaviateConfig) (*Weaviate, error) {
	client, err := weaviate.NewClient(weaviate.Config{
		Host:   cfg.Host,
		Scheme: cfg.Scheme,
	})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return &Weaviate{client: client, class: cfg.Class}, nil
}

func (w *Weaviate) Query(ctx context.Context, vector []float32, topK int, filter map[string]string) (core.QueryResult, error) {
	fields := []graphql.Field{{Name: "text"}}
	for _, prop := range metadataProperties {
		fields = append(fields, graphql.Field{Name: prop})
	}
	fields = append(fields, graphql.Field{Name: "_additional { id distance }"})

	nearVector := w.client.GraphQL().NearVectorArgBuilder().WithVector(vector)

	query := w.client.GraphQL().Get().
		WithClassName(w.class).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(topK)

	if len(filter) > 0 {
		query = query.WithWhere(buildWhere(filter))
	}

	result, err := query.Do(ctx)
	if err != nil {
		return core.QueryResult{}, fmt.Errorf("weaviate query: %w", err)
	}
	if len(result.Errors) > 0 {
		return core.QueryResult{}, fmt.Errorf("weaviate query: %s", result.Errors[0].Message)
	}

	return w.parseResult(result.Data)
}

func buildWhere(filter map[string]string) *filters.WhereBuilder {
	clauses := make([]*filters.WhereBuilder, 0, len(filter))
	for key, value := range filter {
		clauses = append(clauses, filters.Where().
			WithPath([]string{key}).
			WithOperator(filters.Equal).
			WithValueString(value))
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return filters.Where().WithOperator(filters.And).WithOperands(clauses)
}

func (w *Weaviate) parseResult(data map[string]models.JSONObject) (core.QueryResult, error) {
	get, ok := data["Get"].(map[string]any)
	if !ok {
		return core.QueryResult{}, fmt.Errorf("weaviate response has no Get block")
	}
	items, ok := get[w.class].([]any)
	if !ok {
		return core.QueryResult{}, nil
	}

	result := core.QueryResult{}
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		text, _ := obj["text"].(string)
		metadata := make(map[string]string)
		for _, prop := range metadataProperties {
			if v, ok := obj[prop].(string); ok && v != "" {
				metadata[prop] = v
			}
		}

		var id string
		var distance float64
		if additional, ok := obj["_additional"].(map[string]any); ok {
			id, _ = additional["id"].(string)
			if d, ok := additional["distance"].(float64); ok {
				distance = d
			}
		}

		result.IDs = append(result.IDs, id)
		result.Documents = append(result.Documents, text)
		result.Metadatas = append(result.Metadatas, metadata)
		result.Distances = append(result.Distances, distance)
	}
	return result, nil
}

func (w *Weaviate) Upsert(ctx context.Context, docs []core.Document) error {
	if len(docs) == 0 {
		return nil
	}

	objects := make([]*models.Object, 0, len(docs))
	for _, doc := range docs {
		properties := map[string]any{"text": doc.Text}
		for k, v := range doc.Metadata {
			properties[k] = v
		}

		obj := &models.Object{
			Class:      w.class,
			Properties: properties,
			Vector:     models.C11yVector(doc.Vector),
		}
		if doc.ID != "" {
			obj.ID = strfmt.UUID(doc.ID)
		}
		objects = append(objects, obj)
	}

	resp, err := w.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
	if err != nil {
		return fmt.Errorf("weaviate batch: %w", err)
	}
	for _, r := range resp {
		if r.Result != nil && r.Result.Errors != nil && len(r.Result.Errors.Error) > 0 {
			return fmt.Errorf("weaviate batch: %s", r.Result.Errors.Error[0].Message)
		}
	}
	return nil
}
