package usecase

import (
	"testing"

	"github.com/basketwise/recommender/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(id string, price string, md domain.Payload) domain.Candidate {
	if md == nil {
		md = domain.Payload{}
	}

	return domain.Candidate{
		ID:         id,
		Name:       "Product " + id,
		Price:      decimal.RequireFromString(price),
		Similarity: 0.8,
		Metadata:   md,
	}
}

func TestAssembleRecommendations_SameTypeSortedByPrice(t *testing.T) {
	candidates := []domain.Candidate{
		candidate("A", "2.50", nil),
		candidate("B", "1.20", nil),
		candidate("C", "2.50", nil),
		candidate("D", "0.99", nil),
	}
	verdict := &domain.Verdict{Accepted: []domain.Acceptance{
		{Ordinal: 1}, {Ordinal: 3}, {Ordinal: 2}, {Ordinal: 4},
	}}

	recs := AssembleRecommendations(candidates, verdict, domain.ModeSameType, nil)

	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"D", "B", "A", "C"}, ids, "equal prices keep verdict order")
	for i := 1; i < len(recs); i++ {
		assert.True(t, recs[i-1].Price.LessThanOrEqual(recs[i].Price))
	}
}

func TestAssembleRecommendations_NutritionKeepsVerdictOrder(t *testing.T) {
	candidates := []domain.Candidate{
		candidate("A", "1.00", nil),
		candidate("B", "5.00", nil),
		candidate("C", "3.00", nil),
	}
	facts := &NutritionFacts{Candidates: map[string]*domain.NutritionProfile{
		"B": domain.NewNutritionProfile("B", []byte(`{"fiber":9}`)),
	}}
	verdict := &domain.Verdict{Accepted: []domain.Acceptance{
		{Ordinal: 2, Reason: "more fiber"},
		{Ordinal: 1, Reason: "less sugar"},
	}}

	recs := AssembleRecommendations(candidates, verdict, domain.ModeNutritionBetter, facts)

	require.Len(t, recs, 2)
	assert.Equal(t, "B", recs[0].ID)
	assert.Equal(t, "more fiber", recs[0].Reason)
	assert.Equal(t, `{"fiber":9}`, recs[0].NutritionProfile.Render())
	assert.Equal(t, "A", recs[1].ID)
	assert.Nil(t, recs[1].NutritionProfile)
}

func TestAssembleRecommendations_OrdinalRobustness(t *testing.T) {
	candidates := []domain.Candidate{candidate("A", "1.00", nil), candidate("B", "2.00", nil)}
	verdict := &domain.Verdict{Accepted: []domain.Acceptance{
		{Ordinal: 0}, {Ordinal: -1}, {Ordinal: 3}, {Ordinal: 100}, {Ordinal: 2}, {Ordinal: 2, Reason: "dup"},
	}}

	for _, mode := range []domain.Mode{domain.ModeSameType, domain.ModeNutritionBetter} {
		recs := AssembleRecommendations(candidates, verdict, mode, nil)

		require.Len(t, recs, 1)
		assert.Equal(t, "B", recs[0].ID)
		assert.Empty(t, recs[0].Reason, "first occurrence wins")
	}

	assert.Empty(t, AssembleRecommendations(candidates, nil, domain.ModeSameType, nil))
	assert.Empty(t, AssembleRecommendations(nil, verdict, domain.ModeSameType, nil))
}

func TestAssembleRecommendations_Metadata(t *testing.T) {
	tests := []struct {
		name          string
		md            domain.Payload
		imageURL      *string
		gcpPublicURL  *string
		extraExpected domain.Payload
	}{
		{
			name:          "no image fields",
			md:            domain.Payload{"category": "Dairy"},
			extraExpected: domain.Payload{},
		},
		{
			name: "image_url first",
			md: domain.Payload{
				"image_url":      "https://img/a.jpg",
				"img_url":        "https://img/b.jpg",
				"gcp_public_url": "https://gcs/c.jpg",
			},
			imageURL:      ptr("https://img/a.jpg"),
			gcpPublicURL:  ptr("https://gcs/c.jpg"),
			extraExpected: domain.Payload{},
		},
		{
			name:          "img_url fallback",
			md:            domain.Payload{"img_url": "https://img/b.jpg", "brand": "Acme"},
			imageURL:      ptr("https://img/b.jpg"),
			extraExpected: domain.Payload{"brand": "Acme"},
		},
		{
			name:          "gcp_public_url fallback",
			md:            domain.Payload{"gcp_public_url": "https://gcs/c.jpg", "weight_g": 500.0},
			imageURL:      ptr("https://gcs/c.jpg"),
			gcpPublicURL:  ptr("https://gcs/c.jpg"),
			extraExpected: domain.Payload{"weight_g": 500.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := candidate("A", "1.00", tt.md)
			recs := AssembleRecommendations([]domain.Candidate{c}, &domain.Verdict{Accepted: []domain.Acceptance{{Ordinal: 1}}}, domain.ModeSameType, nil)

			require.Len(t, recs, 1)
			assert.Equal(t, tt.imageURL, recs[0].Images.ImageURL)
			assert.Equal(t, tt.gcpPublicURL, recs[0].Images.GCPPublicURL)
			assert.Nil(t, recs[0].Images.GCPBucket)
			assert.Nil(t, recs[0].Images.GCPPath)
			assert.Equal(t, tt.extraExpected, recs[0].Extra)
		})
	}
}

func ptr(s string) *string {
	return &s
}
