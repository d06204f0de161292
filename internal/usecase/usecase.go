package usecase

import "context"

type RecommendationUC interface {
	Recommend(ctx context.Context, req *RecommendReq) (*RecommendRes, error)
}
