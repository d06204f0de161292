//go:build integration

package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/basketwise/recommender/internal/cfg"
	"github.com/basketwise/recommender/internal/domain"
	"github.com/basketwise/recommender/pkg/clients"
	"github.com/basketwise/recommender/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *clients.RedisClient {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx,
		"redis:7.4-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate redis container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := clients.NewRedisClient(&cfg.RedisCfg{
		Addr:        fmt.Sprintf("%s:%s", host, port.Port()),
		DialTimeout: 5 * time.Second,
		Timeout:     time.Second,
	})
	require.NoError(t, client.Ping(ctx))

	return client
}

func TestCacheRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client := setupRedis(t)
	repo := NewCacheRepo(client, &cfg.RedisCfg{EmbeddingTTL: time.Minute, NutritionTTL: time.Minute},
		"text-embedding-005", logger.NewSlogLogger())
	ctx := context.Background()

	t.Run("embedding roundtrip", func(t *testing.T) {
		miss, err := repo.GetEmbedding(ctx, "Milk 1L Dairy")
		require.NoError(t, err)
		assert.Nil(t, miss)

		require.NoError(t, repo.SetEmbedding(ctx, "Milk 1L Dairy", domain.EmbeddingVector{0.25, -0.5, 1}))

		hit, err := repo.GetEmbedding(ctx, "Milk 1L Dairy")
		require.NoError(t, err)
		assert.Equal(t, domain.EmbeddingVector{0.25, -0.5, 1}, hit)
	})

	t.Run("nutrition profiles", func(t *testing.T) {
		require.NoError(t, repo.SetNutritionProfiles(ctx, []*domain.NutritionProfile{
			domain.NewNutritionProfile("1", []byte(`{"sugar":4.8}`)),
			domain.NewNutritionProfile("2", []byte(`null`)),
		}))

		got, err := repo.GetNutritionProfiles(ctx, []string{"1", "2", "3"})
		require.NoError(t, err)

		require.Contains(t, got, "1")
		assert.Equal(t, `{"sugar":4.8}`, got["1"].Render())
		require.Contains(t, got, "2")
		assert.False(t, got["2"].Available())
		assert.NotContains(t, got, "3")
	})

	t.Run("id mismatch is a miss", func(t *testing.T) {
		require.NoError(t, client.Client.Set(ctx, "nutrition:9", `{"product_id":"10","profile":{}}`, time.Minute).Err())

		got, err := repo.GetNutritionProfiles(ctx, []string{"9"})
		require.NoError(t, err)
		assert.Empty(t, got)

		exists, err := client.Client.Exists(ctx, "nutrition:9").Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})
}
