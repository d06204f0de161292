package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Payload описывает метаданные точки в векторном индексе.
// Известные ключи читаются явно, остальные передаются дальше как есть.
type Payload map[string]any

// EmbeddingVector — вектор фиксированной размерности для одной позиции корзины
type EmbeddingVector []float32

// String возвращает строковое значение ключа; числа приводятся к строке.
func (p Payload) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// OptionalString возвращает nil, если ключ отсутствует или пуст.
func (p Payload) OptionalString(key string) *string {
	s := p.String(key)
	if s == "" {
		return nil
	}

	return &s
}

// Decimal читает числовое значение (число или строку); при ошибке возвращает ноль.
func (p Payload) Decimal(key string) decimal.Decimal {
	switch v := p[key].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// Without возвращает копию payload без перечисленных ключей.
func (p Payload) Without(keys ...string) Payload {
	skip := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		skip[k] = struct{}{}
	}

	out := make(Payload, len(p))
	for k, v := range p {
		if _, ok := skip[k]; ok {
			continue
		}
		out[k] = v
	}

	return out
}
