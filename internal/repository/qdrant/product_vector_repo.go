package qdrant

import (
	"context"
	"strconv"

	"github.com/basketwise/recommender/internal/cfg"
	"github.com/basketwise/recommender/internal/domain"
	"github.com/basketwise/recommender/internal/usecase"
	"github.com/basketwise/recommender/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

// ProductVectorRepo ищет похожие товары в коллекции Qdrant.
type ProductVectorRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewProductVectorRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *ProductVectorRepo {
	return &ProductVectorRepo{
		client: client,
		cfg:    cfg,
	}
}

// SearchSimilar возвращает top-k ближайших точек вместе с payload в порядке убывания схожести.
// Граница цены применяется на стороне Qdrant как строгое неравенство.
func (q *ProductVectorRepo) SearchSimilar(ctx context.Context, req *usecase.SearchReq) ([]domain.ScoredMatch, error) {
	if len(req.Vector) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrVectorEmbeddingEmpty)
	}

	points, err := q.client.Query(ctx, q.buildQuery(req))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	matches := make([]domain.ScoredMatch, 0, len(points))
	for _, p := range points {
		payload := PayloadFromQdrant(p.GetPayload())
		matches = append(matches, domain.ScoredMatch{
			ID:      matchID(p.GetId(), payload),
			Score:   p.GetScore(),
			Payload: payload,
		})
	}

	return matches, nil
}

func (q *ProductVectorRepo) buildQuery(req *usecase.SearchReq) *qdrant.QueryPoints {
	query := &qdrant.QueryPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Query:          qdrant.NewQuery(req.Vector...),
		Limit:          qdrant.PtrOf(uint64(req.TopK)),
		WithPayload:    qdrant.NewWithPayload(true),
	}

	if req.PriceUpperBound != nil {
		query.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewRange(q.cfg.PriceField, &qdrant.Range{
					Lt: qdrant.PtrOf(req.PriceUpperBound.InexactFloat64()),
				}),
			},
		}
	}

	return query
}

// matchID берёт идентификатор товара из payload, иначе идентификатор точки.
func matchID(id *qdrant.PointId, payload domain.Payload) string {
	if productID := payload.String(domain.PayloadProductID); productID != "" {
		return productID
	}

	if uuid := id.GetUuid(); uuid != "" {
		return uuid
	}

	return strconv.FormatUint(id.GetNum(), 10)
}
