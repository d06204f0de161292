package usecase

import (
	"context"

	"github.com/basketwise/recommender/internal/domain"
)

type VectorRepository interface {
	SearchSimilar(ctx context.Context, req *SearchReq) ([]domain.ScoredMatch, error)
}

// NutritionRepository читает профили пищевой ценности; отсутствующий профиль не является ошибкой.
type NutritionRepository interface {
	GetNutritionProfile(ctx context.Context, productID string) (*domain.NutritionProfile, error)
	GetNutritionProfiles(ctx context.Context, productIDs []string) (map[string]*domain.NutritionProfile, error)
}

type CacheRepository interface {
	GetEmbedding(ctx context.Context, text string) (domain.EmbeddingVector, error)
	SetEmbedding(ctx context.Context, text string, vector domain.EmbeddingVector) error
	GetNutritionProfiles(ctx context.Context, productIDs []string) (map[string]*domain.NutritionProfile, error)
	SetNutritionProfiles(ctx context.Context, profiles []*domain.NutritionProfile) error
}
