package converter

import "github.com/basketwise/recommender/internal/domain"

func ToNutritionRedisModel(entity *domain.NutritionProfile) *NutritionRedisModel {
	return &NutritionRedisModel{
		ProductID: entity.ProductID,
		Profile:   entity.Raw,
	}
}

func ToNutritionProfile(model *NutritionRedisModel) *domain.NutritionProfile {
	return domain.NewNutritionProfile(model.ProductID, model.Profile)
}

func ToArrNutritionRedisModel(entities []*domain.NutritionProfile) []NutritionRedisModel {
	models := make([]NutritionRedisModel, 0, len(entities))
	for _, entity := range entities {
		if entity == nil {
			continue
		}
		models = append(models, *ToNutritionRedisModel(entity))
	}

	return models
}

func ToEmbeddingRedisModel(model, text string, vector domain.EmbeddingVector) *EmbeddingRedisModel {
	return &EmbeddingRedisModel{
		Model:  model,
		Text:   text,
		Vector: vector,
	}
}
