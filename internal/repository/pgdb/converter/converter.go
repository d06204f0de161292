package converter

import "github.com/basketwise/recommender/internal/domain"

// ToEntity преобразует строку grocery_products в доменный профиль.
func ToEntity(model *NutritionProfileModel) *domain.NutritionProfile {
	return domain.NewNutritionProfile(model.ID, model.NutritionProfile)
}

func ToArrEntity(models []NutritionProfileModel) map[string]*domain.NutritionProfile {
	out := make(map[string]*domain.NutritionProfile, len(models))
	for i := range models {
		out[models[i].ID] = ToEntity(&models[i])
	}

	return out
}
