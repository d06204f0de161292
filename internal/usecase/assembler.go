package usecase

import (
	"slices"

	"github.com/basketwise/recommender/internal/domain"
)

// knownPayloadKeys извлекаются в поля рекомендации; остальное уходит в Extra.
var knownPayloadKeys = []string{
	domain.PayloadProductID,
	domain.PayloadName,
	domain.PayloadDescription,
	domain.PayloadPrice,
	domain.PayloadCategory,
	domain.PayloadImageURL,
	domain.PayloadImgURL,
	domain.PayloadGCPPublicURL,
	domain.PayloadGCPImageURL,
	domain.PayloadGCPBucket,
	domain.PayloadGCPPath,
}

// AssembleRecommendations сопоставляет вердикт с кандидатами и упорядочивает результат.
// Ординалы вне [1, len(candidates)] и повторы пропускаются.
// SAME_TYPE сортируется по цене по возрастанию, NUTRITION_BETTER сохраняет порядок модели.
func AssembleRecommendations(
	candidates []domain.Candidate,
	verdict *domain.Verdict,
	mode domain.Mode,
	facts *NutritionFacts,
) []domain.Recommendation {
	if verdict == nil || len(candidates) == 0 {
		return nil
	}

	seen := make(map[int]struct{}, len(verdict.Accepted))
	recs := make([]domain.Recommendation, 0, len(verdict.Accepted))
	for _, acc := range verdict.Accepted {
		if acc.Ordinal < 1 || acc.Ordinal > len(candidates) {
			continue
		}
		if _, dup := seen[acc.Ordinal]; dup {
			continue
		}
		seen[acc.Ordinal] = struct{}{}

		c := candidates[acc.Ordinal-1]
		rec := newRecommendation(c, acc.Reason)
		if mode == domain.ModeNutritionBetter {
			rec.NutritionProfile = facts.For(c.ID)
		}

		recs = append(recs, rec)
	}

	if mode == domain.ModeSameType {
		slices.SortStableFunc(recs, func(a, b domain.Recommendation) int {
			return a.Price.Cmp(b.Price)
		})
	}

	return recs
}

func newRecommendation(c domain.Candidate, reason string) domain.Recommendation {
	md := c.Metadata

	return domain.Recommendation{
		ID:          c.ID,
		Name:        c.Name,
		Category:    md.String(domain.PayloadCategory),
		Price:       c.Price,
		Description: c.Description,
		Similarity:  c.Similarity,
		Reason:      reason,
		Images:      extractImageRefs(md),
		Extra:       md.Without(knownPayloadKeys...),
	}
}

func extractImageRefs(md domain.Payload) domain.ImageRefs {
	imageURL := md.OptionalString(domain.PayloadImageURL)
	if imageURL == nil {
		imageURL = md.OptionalString(domain.PayloadImgURL)
	}
	if imageURL == nil {
		imageURL = md.OptionalString(domain.PayloadGCPPublicURL)
	}

	return domain.ImageRefs{
		ImageURL:     imageURL,
		GCPPublicURL: md.OptionalString(domain.PayloadGCPPublicURL),
		GCPImageURL:  md.OptionalString(domain.PayloadGCPImageURL),
		GCPBucket:    md.OptionalString(domain.PayloadGCPBucket),
		GCPPath:      md.OptionalString(domain.PayloadGCPPath),
	}
}
