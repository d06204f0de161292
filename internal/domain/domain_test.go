package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartItem_EmbeddingQuery(t *testing.T) {
	tests := []struct {
		name     string
		item     *CartItem
		expected string
	}{
		{
			name:     "name and category",
			item:     NewCartItem("1", "Milk 1L", "Dairy", decimal.NewFromInt(3), ""),
			expected: "Milk 1L Dairy",
		},
		{
			name:     "empty category is not appended",
			item:     NewCartItem("2", "  Eggs 10pcs ", "   ", decimal.NewFromInt(2), ""),
			expected: "Eggs 10pcs",
		},
		{
			name:     "blank name",
			item:     NewCartItem("3", " ", "", decimal.NewFromInt(1), ""),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.item.EmbeddingQuery())
		})
	}
}

func TestMode(t *testing.T) {
	assert.True(t, ModeSameType.Valid())
	assert.True(t, ModeNutritionBetter.Valid())
	assert.False(t, Mode("upgrade").Valid())

	assert.True(t, ModeSameType.PriceBounded())
	assert.False(t, ModeNutritionBetter.PriceBounded())
}

func TestPayload_Accessors(t *testing.T) {
	p := Payload{
		"name":       "Oat Milk",
		"price":      1.99,
		"str_price":  "2.49",
		"bad_price":  "n/a",
		"product_id": int64(42),
		"empty":      "",
	}

	assert.Equal(t, "Oat Milk", p.String("name"))
	assert.Equal(t, "42", p.String("product_id"))
	assert.Equal(t, "", p.String("missing"))

	assert.Nil(t, p.OptionalString("empty"))
	assert.Nil(t, p.OptionalString("missing"))
	assert.Equal(t, "Oat Milk", *p.OptionalString("name"))

	assert.True(t, p.Decimal("price").Equal(decimal.RequireFromString("1.99")))
	assert.True(t, p.Decimal("str_price").Equal(decimal.RequireFromString("2.49")))
	assert.True(t, p.Decimal("bad_price").IsZero())
	assert.True(t, p.Decimal("missing").IsZero())

	rest := p.Without("name", "price")
	assert.NotContains(t, rest, "name")
	assert.NotContains(t, rest, "price")
	assert.Contains(t, rest, "product_id")
	assert.Contains(t, p, "name", "original payload must stay untouched")
}

func TestNewCandidate(t *testing.T) {
	c := NewCandidate(ScoredMatch{
		ID:    "A",
		Score: 0.9,
		Payload: Payload{
			"name":        "Store Milk 1L",
			"description": "Whole milk",
			"price":       2.0,
		},
	})

	assert.Equal(t, "A", c.ID)
	assert.Equal(t, "Store Milk 1L", c.Name)
	assert.Equal(t, "Whole milk", c.Description)
	assert.True(t, c.Price.Equal(decimal.NewFromInt(2)))
	assert.InDelta(t, 0.9, float64(c.Similarity), 1e-6)
}

func TestNutritionProfile_Render(t *testing.T) {
	var missing *NutritionProfile
	assert.Equal(t, NutritionNotAvailable, missing.Render())
	assert.Equal(t, NutritionNotAvailable, NewNutritionProfile("1", nil).Render())
	assert.Equal(t, NutritionNotAvailable, NewNutritionProfile("1", []byte("null")).Render())

	obj := NewNutritionProfile("1", []byte(`{ "protein": 3.4,  "sugar": 4.8 }`))
	assert.True(t, obj.Available())
	assert.Equal(t, `{"protein":3.4,"sugar":4.8}`, obj.Render())

	str := NewNutritionProfile("1", []byte(`"high fiber"`))
	assert.Equal(t, "high fiber", str.Render())
}

func TestNewImageObject(t *testing.T) {
	bucket, path, empty := "grocery-images", "milk/1.jpg", ""

	assert.Nil(t, NewImageObject(nil, &path))
	assert.Nil(t, NewImageObject(&bucket, &empty))

	obj := NewImageObject(&bucket, &path)
	if assert.NotNil(t, obj) {
		assert.Equal(t, "grocery-images", obj.Bucket)
		assert.Equal(t, "milk/1.jpg", obj.ObjectKey)
	}
}
