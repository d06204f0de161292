package usecase

import (
	"github.com/basketwise/recommender/internal/domain"
	"github.com/shopspring/decimal"
)

// RECOMMENDATION USECASE

// RecommendReq — запрос рекомендаций для всех позиций корзины в одном режиме.
type RecommendReq struct {
	Items []domain.CartItem
	Mode  domain.Mode
}

// RecommendRes — результат: рекомендации по позициям и сводка пропусков.
type RecommendRes struct {
	Recommendations domain.RecommendationSet
	Summary         RunSummary
}

// RunSummary используется для логирования и метрик запроса.
type RunSummary struct {
	Total       int
	Recommended int
	Skipped     map[SkipReason]int
}

// SkipReason — причина, по которой позиция не попала в результат.
type SkipReason string

const (
	SkipNone                 SkipReason = ""
	SkipInvalidInput         SkipReason = "invalid_input"
	SkipEmbeddingUnavailable SkipReason = "embedding_unavailable"
	SkipUpstreamFailed       SkipReason = "upstream_failed"
	SkipParseFailed          SkipReason = "parse_failed"
	SkipNoCandidates         SkipReason = "no_candidates"
	SkipNoRecommendations    SkipReason = "no_recommendations"
)

// ItemResult — явный результат обработки одной позиции: либо рекомендации, либо причина пропуска.
type ItemResult struct {
	ItemID          string
	Recommendations []domain.Recommendation
	Skip            SkipReason
	Err             error
}

// NutritionFacts — вспомогательные данные валидатора в режиме NUTRITION_BETTER.
type NutritionFacts struct {
	Original   *domain.NutritionProfile
	Candidates map[string]*domain.NutritionProfile
}

// For возвращает профиль кандидата или nil.
func (f *NutritionFacts) For(productID string) *domain.NutritionProfile {
	if f == nil {
		return nil
	}

	return f.Candidates[productID]
}

// INFRASTRUCTURE / REPOSITORIES

// SearchReq — запрос ближайших соседей в векторном индексе.
// PriceUpperBound != nil ограничивает выдачу товарами строго дешевле границы.
type SearchReq struct {
	Vector          domain.EmbeddingVector
	TopK            int
	PriceUpperBound *decimal.Decimal
}

// MAPPERS

func NewRecommendReq(items []domain.CartItem, mode domain.Mode) *RecommendReq {
	return &RecommendReq{
		Items: items,
		Mode:  mode,
	}
}

func NewRecommendRes(set domain.RecommendationSet, summary RunSummary) *RecommendRes {
	return &RecommendRes{
		Recommendations: set,
		Summary:         summary,
	}
}

func NewSearchReq(vector domain.EmbeddingVector, topK int, priceUpperBound *decimal.Decimal) *SearchReq {
	return &SearchReq{
		Vector:          vector,
		TopK:            topK,
		PriceUpperBound: priceUpperBound,
	}
}

func newItemResult(itemID string, recs []domain.Recommendation) ItemResult {
	return ItemResult{
		ItemID:          itemID,
		Recommendations: recs,
		Skip:            SkipNone,
	}
}

func skipItem(itemID string, reason SkipReason, err error) ItemResult {
	return ItemResult{
		ItemID: itemID,
		Skip:   reason,
		Err:    err,
	}
}
