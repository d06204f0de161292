package usecase

import (
	"math"
	"testing"

	"github.com/basketwise/recommender/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFilterCandidates(t *testing.T) {
	matches := []domain.ScoredMatch{
		{ID: "A", Score: 0.9, Payload: domain.Payload{"name": "Store Milk", "price": 2.0}},
		{ID: "B", Score: 0.3, Payload: domain.Payload{"name": "Bread", "price": 1.0}},
		{ID: "C", Score: 0.5, Payload: domain.Payload{"name": "Oat Milk", "price": 2.5}},
		{ID: "D", Score: float32(math.NaN())},
		{ID: "E", Score: 0.49999},
	}

	got := FilterCandidates(matches, DefaultSimilarityThreshold)

	if assert.Len(t, got, 2) {
		assert.Equal(t, "A", got[0].ID)
		assert.Equal(t, "C", got[1].ID, "threshold is inclusive")
		assert.Equal(t, "Oat Milk", got[1].Name)
	}
	for _, c := range got {
		assert.GreaterOrEqual(t, c.Similarity, DefaultSimilarityThreshold)
	}
}

func TestFilterCandidates_Empty(t *testing.T) {
	assert.Empty(t, FilterCandidates(nil, DefaultSimilarityThreshold))
	assert.Empty(t, FilterCandidates([]domain.ScoredMatch{{ID: "B", Score: 0.1}}, DefaultSimilarityThreshold))
}
