package http

import (
	_ "github.com/basketwise/recommender/docs" // Импорт сгенерированных файлов
	"github.com/basketwise/recommender/internal/usecase"
	"github.com/basketwise/recommender/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(recUC usecase.RecommendationUC, maxRequestBytes int64, allowedOrigin string) {
	r.router.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(r.logger),
		middleware.Recoverer,
		cors(allowedOrigin), // preflight отвечает до маршрутизации
	)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Get("/health", health)

	r.router.Route("/api", func(api chi.Router) {
		recHandler := NewRecommendationHandler(recUC, maxRequestBytes, r.logger)
		registerRecommendationRoutes(api, recHandler)
	})
}

func registerRecommendationRoutes(router chi.Router, recHandler *RecommendationHandler) {
	router.Post("/money-saver/recommendations", recHandler.moneySaver)
	router.Post("/healthy/recommendations", recHandler.healthy)
}
