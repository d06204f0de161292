package qdrant

import (
	"testing"

	"github.com/basketwise/recommender/internal/cfg"
	"github.com/basketwise/recommender/internal/domain"
	"github.com/basketwise/recommender/internal/usecase"
	"github.com/qdrant/go-client/qdrant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadFromQdrant(t *testing.T) {
	payload := qdrant.NewValueMap(map[string]any{
		"name":     "Oat Milk",
		"price":    1.99,
		"stock":    int64(12),
		"organic":  true,
		"tags":     []any{"vegan", "dairy-free"},
		"supplier": map[string]any{"country": "SE"},
		"missing":  nil,
	})

	got := PayloadFromQdrant(payload)

	assert.Equal(t, "Oat Milk", got["name"])
	assert.Equal(t, 1.99, got["price"])
	assert.Equal(t, int64(12), got["stock"])
	assert.Equal(t, true, got["organic"])
	assert.Equal(t, []any{"vegan", "dairy-free"}, got["tags"])
	assert.Equal(t, map[string]any{"country": "SE"}, got["supplier"])
	assert.Contains(t, got, "missing")
	assert.Nil(t, got["missing"])
}

func TestMatchID(t *testing.T) {
	assert.Equal(t, "sku-1", matchID(qdrant.NewIDNum(7), domain.Payload{"product_id": "sku-1"}))
	assert.Equal(t, "42", matchID(qdrant.NewIDNum(7), domain.Payload{"product_id": int64(42)}))
	assert.Equal(t, "7", matchID(qdrant.NewIDNum(7), domain.Payload{}))
	assert.Equal(t,
		"5c56c793-69f3-4fbf-87e6-c4bf54c28c26",
		matchID(qdrant.NewIDUUID("5c56c793-69f3-4fbf-87e6-c4bf54c28c26"), domain.Payload{}),
	)
}

func TestProductVectorRepo_BuildQuery(t *testing.T) {
	repo := NewProductVectorRepo(nil, &cfg.QdrantCfg{QdrantCollectionName: "grocery", PriceField: "price"})

	t.Run("without price bound", func(t *testing.T) {
		q := repo.buildQuery(usecase.NewSearchReq(domain.EmbeddingVector{0.1, 0.2}, 10, nil))

		assert.Equal(t, "grocery", q.GetCollectionName())
		assert.Equal(t, uint64(10), q.GetLimit())
		assert.Nil(t, q.GetFilter())
		assert.True(t, q.GetWithPayload().GetEnable())
	})

	t.Run("with price bound", func(t *testing.T) {
		bound := decimal.RequireFromString("3.00")
		q := repo.buildQuery(usecase.NewSearchReq(domain.EmbeddingVector{0.1, 0.2}, 10, &bound))

		require.NotNil(t, q.GetFilter())
		must := q.GetFilter().GetMust()
		require.Len(t, must, 1)

		field := must[0].GetField()
		assert.Equal(t, "price", field.GetKey())
		require.NotNil(t, field.GetRange().Lt)
		assert.Equal(t, 3.0, field.GetRange().GetLt())
		assert.Nil(t, field.GetRange().Lte)
	})
}
