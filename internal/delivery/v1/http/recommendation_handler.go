package http

import (
	"net/http"

	"github.com/basketwise/recommender/internal/domain"
	"github.com/basketwise/recommender/internal/usecase"
	"github.com/basketwise/recommender/pkg/e"
	"github.com/basketwise/recommender/pkg/logger"
	"github.com/jimlawless/whereami"
)

type RecommendationHandler struct {
	recUC           usecase.RecommendationUC
	maxRequestBytes int64
	logger          logger.Logger
}

func NewRecommendationHandler(recUC usecase.RecommendationUC, maxRequestBytes int64, logger logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recUC:           recUC,
		maxRequestBytes: maxRequestBytes,
		logger:          logger,
	}
}

// moneySaver godoc
// @Summary      Более дешёвые замены
// @Description  Для каждой позиции корзины подбирает товары того же типа строго дешевле исходного, по возрастанию цены.
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        request body RecommendationsRequest true "Позиции корзины"
// @Success      200 {object} RecommendationsResponse
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/money-saver/recommendations [post]
func (h *RecommendationHandler) moneySaver(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, domain.ModeSameType)
}

// healthy godoc
// @Summary      Более полезные замены
// @Description  Для каждой позиции корзины подбирает похожие товары с лучшим профилем пищевой ценности, в порядке оценки модели.
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        request body RecommendationsRequest true "Позиции корзины"
// @Success      200 {object} RecommendationsResponse
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/healthy/recommendations [post]
func (h *RecommendationHandler) healthy(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, domain.ModeNutritionBetter)
}

func (h *RecommendationHandler) recommend(w http.ResponseWriter, r *http.Request, mode domain.Mode) {
	if h.maxRequestBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)
	}

	items, err := decodeCartItems(r.Body, h.logger)
	if err != nil {
		h.logger.Warnf("Rejected %s request: %v", mode, err)
		WriteError(w, err)
		return
	}

	res, err := h.recUC.Recommend(r.Context(), usecase.NewRecommendReq(items, mode))
	if err != nil {
		h.logger.Errorf(e.Wrap(whereami.WhereAmI(), err), "failed to build %s recommendations", mode)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewRecommendationsResponse(res.Recommendations, mode))
}

// health godoc
// @Summary      Проверка живости
// @Tags         service
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func health(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, HealthResponse{Status: "healthy"})
}
