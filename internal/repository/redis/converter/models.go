package converter

import "encoding/json"

// EmbeddingRedisModel — закэшированный вектор; Text хранится для проверки коллизий ключа.
type EmbeddingRedisModel struct {
	Model  string    `json:"model"`
	Text   string    `json:"text"`
	Vector []float32 `json:"vector"`
}

// NutritionRedisModel — закэшированный профиль пищевой ценности товара.
type NutritionRedisModel struct {
	ProductID string          `json:"product_id"`
	Profile   json.RawMessage `json:"profile"`
}
