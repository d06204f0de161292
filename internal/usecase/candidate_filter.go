package usecase

import "github.com/basketwise/recommender/internal/domain"

// DefaultSimilarityThreshold — минимальная схожесть, при которой совпадение становится кандидатом.
const DefaultSimilarityThreshold float32 = 0.5

// FilterCandidates оставляет совпадения со score >= threshold в исходном порядке.
// Пустой результат не является ошибкой.
func FilterCandidates(matches []domain.ScoredMatch, threshold float32) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(matches))
	for _, m := range matches {
		// NaN тоже отбрасывается
		if !(m.Score >= threshold) {
			continue
		}
		candidates = append(candidates, domain.NewCandidate(m))
	}

	return candidates
}
