package qdrant

import (
	"github.com/basketwise/recommender/internal/domain"
	"github.com/qdrant/go-client/qdrant"
)

// PayloadFromQdrant переводит payload точки в открытый словарь метаданных.
// Числа остаются int64/float64, вложенные структуры — map[string]any и []any.
func PayloadFromQdrant(payload map[string]*qdrant.Value) domain.Payload {
	out := make(domain.Payload, len(payload))
	for k, v := range payload {
		out[k] = valueFromQdrant(v)
	}

	return out
}

func valueFromQdrant(v *qdrant.Value) any {
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_StructValue:
		fields := kind.StructValue.GetFields()
		m := make(map[string]any, len(fields))
		for k, f := range fields {
			m[k] = valueFromQdrant(f)
		}
		return m
	case *qdrant.Value_ListValue:
		values := kind.ListValue.GetValues()
		list := make([]any, 0, len(values))
		for _, item := range values {
			list = append(list, valueFromQdrant(item))
		}
		return list
	default:
		return nil
	}
}
