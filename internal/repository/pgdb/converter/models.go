package converter

// NutritionProfileModel представляет строку grocery_products с профилем пищевой ценности.
type NutritionProfileModel struct {
	ID               string `db:"id"`
	NutritionProfile []byte `db:"nutrition_profile"` // NULL сканируется в nil
}
