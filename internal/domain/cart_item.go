package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CartItem описывает позицию корзины, для которой подбираются замены
type CartItem struct {
	ID          string
	Name        string
	Category    string
	Price       decimal.Decimal
	Description string
}

func NewCartItem(id, name, category string, price decimal.Decimal, description string) *CartItem {
	return &CartItem{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Category:    strings.TrimSpace(category),
		Price:       price,
		Description: strings.TrimSpace(description),
	}
}

// EmbeddingQuery возвращает текст для эмбеддинга: название и, если задана, категория.
func (c *CartItem) EmbeddingQuery() string {
	parts := []string{c.Name}
	if c.Category != "" {
		parts = append(parts, c.Category)
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}
