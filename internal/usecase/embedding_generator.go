package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/basketwise/recommender/internal/domain"
	"github.com/basketwise/recommender/pkg/e"
	"github.com/basketwise/recommender/pkg/logger"
)

const cacheWriteTimeout = 500 * time.Millisecond

// EmbeddingGenerator превращает текст позиции корзины в вектор.
// Если подключён кэш, сначала ищет вектор в нём.
type EmbeddingGenerator struct {
	embedder  EmbedderInfra
	cacheRepo CacheRepository
	logger    logger.Logger
}

// NewEmbeddingGenerator принимает nil-embedder, если модель не удалось инициализировать:
// тогда каждый вызов Generate завершается ErrEmbeddingUnavailable. cacheRepo может быть nil.
func NewEmbeddingGenerator(embedder EmbedderInfra, cacheRepo CacheRepository, logger logger.Logger) *EmbeddingGenerator {
	return &EmbeddingGenerator{
		embedder:  embedder,
		cacheRepo: cacheRepo,
		logger:    logger,
	}
}

// Generate возвращает эмбеддинг текста. Одна попытка, без повторов.
func (g *EmbeddingGenerator) Generate(ctx context.Context, text string) (domain.EmbeddingVector, error) {
	const op = "EmbeddingGenerator.Generate"

	if g.embedder == nil {
		return nil, e.Wrap(op, e.ErrEmbeddingUnavailable)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, e.Wrap(op, e.ErrEmptyEmbeddingQuery)
	}

	if g.cacheRepo != nil {
		cached, err := g.cacheRepo.GetEmbedding(ctx, text)
		if err != nil {
			g.logger.Warnf("Failed to read embedding from cache: %v", e.Wrap(op, err))
		} else if len(cached) > 0 {
			return cached, nil
		}
	}

	values, err := g.embedder.Embed(ctx, text)
	if err != nil {
		return nil, e.Join(op, e.ErrEmbeddingRequestFailed, err)
	}
	if len(values) == 0 {
		return nil, e.Join(op, e.ErrEmbeddingRequestFailed, e.ErrVectorEmbeddingEmpty)
	}

	vector := domain.EmbeddingVector(values)

	// Запись в кэш не влияет на результат
	if g.cacheRepo != nil {
		cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
		defer cancel()

		if err := g.cacheRepo.SetEmbedding(cacheCtx, text, vector); err != nil {
			g.logger.Warnf("Failed to cache embedding: %v", e.Wrap(op, err))
		}
	}

	return vector, nil
}
