package domain

import (
	"bytes"
	"encoding/json"
)

// NutritionNotAvailable подставляется в промпт, если профиль товара не найден
const NutritionNotAvailable = "Not available"

// NutritionProfile — непрозрачный JSON-профиль пищевой ценности из реляционного хранилища
type NutritionProfile struct {
	ProductID string
	Raw       json.RawMessage
}

func NewNutritionProfile(productID string, raw []byte) *NutritionProfile {
	return &NutritionProfile{
		ProductID: productID,
		Raw:       json.RawMessage(raw),
	}
}

// Available сообщает, есть ли у профиля содержимое (SQL NULL и JSON null — нет).
func (n *NutritionProfile) Available() bool {
	if n == nil {
		return false
	}

	trimmed := bytes.TrimSpace(n.Raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// Render возвращает компактный JSON профиля для промпта или NutritionNotAvailable.
func (n *NutritionProfile) Render() string {
	if !n.Available() {
		return NutritionNotAvailable
	}

	// Строковый JSON-профиль выводится без кавычек
	var s string
	if err := json.Unmarshal(n.Raw, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, n.Raw); err != nil {
		return NutritionNotAvailable
	}

	return buf.String()
}
