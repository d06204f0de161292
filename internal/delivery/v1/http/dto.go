package http

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/basketwise/recommender/internal/domain"
	"github.com/shopspring/decimal"
)

// RecommendationsRequest — тело запроса рекомендаций.
type RecommendationsRequest struct {
	Items json.RawMessage `json:"items" swaggertype:"array,object"`
}

// FlexibleID принимает идентификатор как JSON-строку или число.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*f = FlexibleID(n.String())

	return nil
}

// CartItemDTO — позиция корзины. Цена принимается числом или строкой.
type CartItemDTO struct {
	ID          FlexibleID      `json:"id" swaggertype:"string" example:"1"`
	Name        string          `json:"name" example:"Milk 1L"`
	Category    string          `json:"category" example:"Dairy"`
	Price       decimal.Decimal `json:"price" swaggertype:"number" example:"3.00"`
	Description string          `json:"description" example:"Fresh whole milk"`
}

func (c *CartItemDTO) ToDomain() *domain.CartItem {
	return domain.NewCartItem(string(c.ID), c.Name, c.Category, c.Price, c.Description)
}

// RecommendationsResponse — рекомендации по id позиции корзины.
type RecommendationsResponse struct {
	Recommendations map[string][]RecommendationDTO `json:"recommendations"`
}

// RecommendationDTO — одна рекомендация замены.
// Поля изображений всегда присутствуют и равны null, если их нет в метаданных.
type RecommendationDTO struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Category         string         `json:"category"`
	Price            float64        `json:"price"`
	Description      string         `json:"description"`
	Similarity       float32        `json:"similarity"`
	Reason           string         `json:"reason,omitempty"`
	NutritionReason  string         `json:"nutrition_reason,omitempty"`
	NutritionProfile any            `json:"nutrition_profile,omitempty" swaggertype:"object"`
	ImageURL         *string        `json:"image_url"`
	GCPPublicURL     *string        `json:"gcp_public_url"`
	GCPImageURL      *string        `json:"gcp_image_url"`
	GCPBucket        *string        `json:"gcp_bucket"`
	GCPPath          *string        `json:"gcp_path"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
}

// MAPPERS

func NewRecommendationsResponse(set domain.RecommendationSet, mode domain.Mode) *RecommendationsResponse {
	out := make(map[string][]RecommendationDTO, len(set))
	for itemID, recs := range set {
		dtos := make([]RecommendationDTO, 0, len(recs))
		for i := range recs {
			dtos = append(dtos, toRecommendationDTO(&recs[i], mode))
		}
		out[itemID] = dtos
	}

	return &RecommendationsResponse{Recommendations: out}
}

func toRecommendationDTO(rec *domain.Recommendation, mode domain.Mode) RecommendationDTO {
	dto := RecommendationDTO{
		ID:           rec.ID,
		Name:         rec.Name,
		Category:     rec.Category,
		Price:        rec.Price.InexactFloat64(),
		Description:  rec.Description,
		Similarity:   rec.Similarity,
		ImageURL:     rec.Images.ImageURL,
		GCPPublicURL: rec.Images.GCPPublicURL,
		GCPImageURL:  rec.Images.GCPImageURL,
		GCPBucket:    rec.Images.GCPBucket,
		GCPPath:      rec.Images.GCPPath,
	}

	if len(rec.Extra) > 0 {
		dto.Metadata = rec.Extra
	}

	if mode == domain.ModeNutritionBetter {
		dto.NutritionReason = rec.Reason
		dto.NutritionProfile = nutritionProfileValue(rec.NutritionProfile)
		return dto
	}

	dto.Reason = rec.Reason
	return dto
}

// nutritionProfileValue отдаёт профиль как есть (JSON) или строку "Not available".
func nutritionProfileValue(p *domain.NutritionProfile) any {
	if !p.Available() {
		return domain.NutritionNotAvailable
	}
	if !json.Valid(p.Raw) {
		return domain.NutritionNotAvailable
	}

	return p.Raw
}
