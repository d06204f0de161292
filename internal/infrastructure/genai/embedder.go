package genai

import (
	"context"

	"github.com/basketwise/recommender/pkg/e"
	"github.com/jimlawless/whereami"
	"google.golang.org/genai"
)

const embeddingTaskType = "RETRIEVAL_QUERY"

// Embedder генерирует эмбеддинги запросов через Gemini / Vertex AI.
type Embedder struct {
	client     *genai.Client
	model      string
	dimensions int32
}

// NewEmbedder: dimensions должен совпадать с размерностью коллекции Qdrant; 0 — размерность модели.
func NewEmbedder(client *genai.Client, model string, dimensions int32) *Embedder {
	return &Embedder{
		client:     client,
		model:      model,
		dimensions: dimensions,
	}
}

// Embed отправляет одну строку и возвращает её вектор. Повторов нет.
func (em *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	cfg := &genai.EmbedContentConfig{TaskType: embeddingTaskType}
	if em.dimensions > 0 {
		cfg.OutputDimensionality = genai.Ptr(em.dimensions)
	}

	resp, err := em.client.Models.EmbedContent(ctx, em.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrVectorEmbeddingEmpty)
	}

	return resp.Embeddings[0].Values, nil
}
