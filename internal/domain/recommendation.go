package domain

import "github.com/shopspring/decimal"

// ImageRefs — ссылки на изображения товара, скопированные из метаданных без интерпретации
type ImageRefs struct {
	ImageURL     *string
	GCPPublicURL *string
	GCPImageURL  *string
	GCPBucket    *string
	GCPPath      *string
}

// Recommendation — итоговая рекомендация замены для позиции корзины
type Recommendation struct {
	ID               string
	Name             string
	Category         string
	Price            decimal.Decimal
	Description      string
	Similarity       float32
	Reason           string
	NutritionProfile *NutritionProfile
	Images           ImageRefs
	Extra            Payload // нераспознанные ключи метаданных
}

// RecommendationSet — рекомендации по идентификатору позиции корзины.
// Позиции без рекомендаций в отображение не попадают.
type RecommendationSet map[string][]Recommendation
