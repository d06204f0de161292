package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/basketwise/recommender/internal/cfg"
	v1Http "github.com/basketwise/recommender/internal/delivery/v1/http"
	genaiInfra "github.com/basketwise/recommender/internal/infrastructure/genai"
	minioInfra "github.com/basketwise/recommender/internal/infrastructure/minio"
	s3Repo "github.com/basketwise/recommender/internal/repository/minio"
	"github.com/basketwise/recommender/internal/repository/pgdb"
	qdrantRepo "github.com/basketwise/recommender/internal/repository/qdrant"
	"github.com/basketwise/recommender/internal/repository/redis"
	"github.com/basketwise/recommender/internal/usecase"
	"github.com/basketwise/recommender/pkg/closer"
	"github.com/basketwise/recommender/pkg/clients"
	"github.com/basketwise/recommender/pkg/e"
	"github.com/basketwise/recommender/pkg/logger"
	"github.com/basketwise/recommender/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	readyAttempts   = 5
)

// App держит собранный HTTP-сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	httpSrv *v1Http.Server
	closer  *closer.Closer
}

// NewApp подключает внешние сервисы и собирает пайплайн рекомендаций.
// Недоступность модели эмбеддингов не мешает старту: позиции будут пропускаться.
func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	cl := closer.NewCloser(0)
	fail := func(err error) (*App, error) {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer closeCancel()
		if cerr := cl.Close(closeCtx); cerr != nil {
			logger.Warnf("cleanup after failed start: %v", cerr)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	db, err := initPGDB(ctx, logger, cfg)
	if err != nil {
		return fail(err)
	}
	cl.Add("postgres", func(context.Context) error {
		db.Close()
		return nil
	})
	nutritionRepo := pgdb.NewNutritionRepo(db.Pool)

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		logger.Errorf(err, "failed to initialize qdrant")
		return fail(err)
	}
	cl.Add("qdrant", func(context.Context) error { return qdrantClient.Close() })

	if err := qdrantClient.WaitReady(ctx, readyAttempts); err != nil {
		logger.Errorf(err, "qdrant is not reachable")
		return fail(err)
	}
	if err := clients.EnsureCollection(ctx, qdrantClient); err != nil {
		logger.Errorf(err, "failed to initialize qdrant collection")
		return fail(err)
	}
	vectorRepo := qdrantRepo.NewProductVectorRepo(qdrantClient.Client, cfg.Qdrant)

	var cacheRepo usecase.CacheRepository
	if cfg.Redis.Enabled {
		redisClient := clients.NewRedisClient(cfg.Redis)
		cl.Add("redis", func(context.Context) error { return redisClient.Close() })

		if err := redisClient.WaitReady(ctx, readyAttempts); err != nil {
			// кэш необязателен: без него пайплайн просто чаще ходит во внешние сервисы
			logger.Warnf("redis is not reachable, caching disabled: %v", err)
		} else {
			cacheRepo = redis.NewCacheRepo(redisClient, cfg.Redis, cfg.Gemini.EmbeddingModel, logger)
		}
	}

	var (
		embedder usecase.EmbedderInfra
		chat     usecase.ChatInfra
	)
	genaiClient, err := clients.NewGenAIClient(ctx, cfg.Gemini)
	if err != nil {
		logger.Errorf(err, "failed to initialize genai client, recommendations are unavailable")
	} else {
		embedder = genaiInfra.NewEmbedder(genaiClient, cfg.Gemini.EmbeddingModel, int32(cfg.Qdrant.VectorSize))
		chat = genaiInfra.NewChatCompleter(genaiClient, cfg.Gemini.ChatModel)
	}

	var imageLinks usecase.ImageLinkInfra
	if cfg.Minio.PresignEnabled {
		minioClient, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			logger.Errorf(err, "failed to initialize object storage client")
			return fail(err)
		}
		imageLinks = minioInfra.NewImageLinker(s3Repo.NewImageRepo(minioClient), cfg.Minio)
	}

	recUC := usecase.NewRecommendationUC(
		usecase.NewEmbeddingGenerator(embedder, cacheRepo, logger),
		vectorRepo,
		nutritionRepo,
		cacheRepo,
		usecase.NewSemanticValidator(chat, cfg.Recommend.Temperature),
		imageLinks,
		usecase.RecommendOptions{
			TopK:                cfg.Recommend.TopK,
			SimilarityThreshold: float32(cfg.Recommend.SimilarityThreshold),
			CallTimeout:         cfg.Recommend.CallTimeout,
			MaxConcurrentItems:  cfg.Recommend.MaxConcurrentItems,
		},
		logger,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(recUC, cfg.Recommend.MaxRequestBytes, cfg.Http.AllowedOrigins)

	return &App{
		cfg:     cfg,
		logger:  logger,
		httpSrv: v1Http.NewServer(r, cfg.Http),
		closer:  cl,
	}, nil
}

// Run обслуживает HTTP до сигнала остановки или фатальной ошибки сервера.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("resource cleanup: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	if appErr != nil {
		return e.Wrap(whereami.WhereAmI(), appErr)
	}

	return nil
}

// Migrate применяет миграции схемы без запуска сервера.
func Migrate(cfg *config.PGDBCfg, logger logger.Logger) error {
	if err := postgres.RunMigrations(cfg.DSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if cfg.Db.RunMigrations {
		if err := db.RunMigrations(logger); err != nil {
			logger.Errorf(err, "failed to run migrations")
			db.Close()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	if err := db.Ping(ctx); err != nil {
		logger.Errorf(err, "failed to ping database")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
