package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/basketwise/recommender/internal/cfg"
	"github.com/basketwise/recommender/internal/domain"
	"github.com/basketwise/recommender/internal/repository/redis/converter"
	"github.com/basketwise/recommender/pkg/clients"
	"github.com/basketwise/recommender/pkg/e"
	"github.com/basketwise/recommender/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// CacheRepo кэширует эмбеддинги запросов и профили пищевой ценности.
type CacheRepo struct {
	client         *clients.RedisClient
	cfg            *cfg.RedisCfg
	embeddingModel string
	logger         logger.Logger
}

// NewCacheRepo принимает имя модели эмбеддингов: смена модели не должна отдавать старые векторы.
func NewCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, embeddingModel string, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client:         client,
		cfg:            cfg,
		embeddingModel: embeddingModel,
		logger:         logger,
	}
}

// GetEmbedding возвращает закэшированный вектор или nil при промахе.
func (c *CacheRepo) GetEmbedding(ctx context.Context, text string) (domain.EmbeddingVector, error) {
	key := c.embeddingKey(text)

	data, err := c.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil // cache miss
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.EmbeddingRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, nil
	}

	if model.Text != text || model.Model != c.embeddingModel {
		c.logger.Warnf("Embedding cache key collision: key: %s", key)
		return nil, nil
	}

	return domain.EmbeddingVector(model.Vector), nil
}

// SetEmbedding кэширует вектор с TTL эмбеддингов.
func (c *CacheRepo) SetEmbedding(ctx context.Context, text string, vector domain.EmbeddingVector) error {
	data, err := json.Marshal(converter.ToEmbeddingRedisModel(c.embeddingModel, text, vector))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, c.embeddingKey(text), data, c.cfg.EmbeddingTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetNutritionProfiles возвращает закэшированные профили по ID, пропуская промахи.
func (c *CacheRepo) GetNutritionProfiles(ctx context.Context, ids []string) (map[string]*domain.NutritionProfile, error) {
	if len(ids) == 0 {
		return map[string]*domain.NutritionProfile{}, nil
	}

	keys := c.buildNutritionKeys(ids)

	values, err := c.client.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make(map[string]*domain.NutritionProfile, len(values))
	for i, val := range values {
		data, err := redisValueToBytes(val, keys[i])
		if err != nil {
			c.logger.Warnf("%v", e.Wrap(whereami.WhereAmI(), err))
		}

		if data == nil {
			continue // cache miss
		}

		var model converter.NutritionRedisModel
		if err := json.Unmarshal(data, &model); err != nil {
			c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		if model.ProductID != ids[i] {
			c.logger.Warnf("Cache ID mismatch: key_id: %s, model_id: %s", ids[i], model.ProductID)
			if err := c.client.Client.Del(ctx, keys[i]).Err(); err != nil {
				c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
			}
			continue // cache miss
		}
		result[ids[i]] = converter.ToNutritionProfile(&model)
	}

	return result, nil
}

// SetNutritionProfiles кэширует профили одним pipeline; ошибки сериализации пропускаются с логом.
func (c *CacheRepo) SetNutritionProfiles(ctx context.Context, profiles []*domain.NutritionProfile) error {
	models := converter.ToArrNutritionRedisModel(profiles)
	if len(models) == 0 {
		return nil
	}

	pipeline := c.client.Client.Pipeline()
	for _, model := range models {
		data, err := json.Marshal(model)
		if err != nil {
			c.logger.Warnf("Failed to marshal nutrition profile for caching (Product ID: %s): %v", model.ProductID, e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		pipeline.Set(ctx, c.nutritionKey(model.ProductID), data, c.cfg.NutritionTTL)
	}

	if _, err := pipeline.Exec(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CacheRepo) buildNutritionKeys(ids []string) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.nutritionKey(id)
	}

	return keys
}

func (c *CacheRepo) nutritionKey(id string) string {
	return fmt.Sprintf("nutrition:%s", id)
}

// embeddingKey — хэш модели и текста, чтобы ключ не зависел от длины запроса.
func (c *CacheRepo) embeddingKey(text string) string {
	sum := sha256.Sum256([]byte(c.embeddingModel + "\x00" + text))
	return "embedding:" + hex.EncodeToString(sum[:])
}

// redisValueToBytes конвертирует значение из Redis в []byte.
// Поддерживает string и []byte, возвращает ошибку для неизвестных типов.
func redisValueToBytes(val interface{}, key string) ([]byte, error) {
	switch v := val.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil // cache miss
	default:
		return nil, fmt.Errorf("unexpected Redis value type for key %s: %T", key, val)
	}
}
