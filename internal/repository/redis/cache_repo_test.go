package redis

import (
	"testing"

	"github.com/basketwise/recommender/internal/cfg"
	"github.com/stretchr/testify/assert"
)

func TestCacheRepo_Keys(t *testing.T) {
	a := NewCacheRepo(nil, &cfg.RedisCfg{}, "text-embedding-005", nil)
	b := NewCacheRepo(nil, &cfg.RedisCfg{}, "text-embedding-004", nil)

	assert.Equal(t, "nutrition:42", a.nutritionKey("42"))
	assert.Equal(t, []string{"nutrition:1", "nutrition:A"}, a.buildNutritionKeys([]string{"1", "A"}))

	key := a.embeddingKey("Milk 1L Dairy")
	assert.Equal(t, key, a.embeddingKey("Milk 1L Dairy"))
	assert.Len(t, key, len("embedding:")+64)
	assert.NotEqual(t, key, a.embeddingKey("Milk 1L"))
	assert.NotEqual(t, key, b.embeddingKey("Milk 1L Dairy"), "model name is part of the key")
}

func TestRedisValueToBytes(t *testing.T) {
	data, err := redisValueToBytes("abc", "k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)

	data, err = redisValueToBytes([]byte("abc"), "k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)

	data, err = redisValueToBytes(nil, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)

	_, err = redisValueToBytes(42, "k")
	assert.Error(t, err)
}
