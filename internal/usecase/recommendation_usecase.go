package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/basketwise/recommender/internal/domain"
	"github.com/basketwise/recommender/pkg/e"
	"github.com/basketwise/recommender/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const DefaultTopK = 10

// RecommendOptions — настраиваемые параметры пайплайна.
type RecommendOptions struct {
	TopK                int
	SimilarityThreshold float32
	CallTimeout         time.Duration // 0 — без ограничения
	MaxConcurrentItems  int           // <= 1 — позиции обрабатываются последовательно
}

// DefaultRecommendOptions возвращает значения по умолчанию: top-10, порог 0.5, последовательная обработка.
func DefaultRecommendOptions() RecommendOptions {
	return RecommendOptions{
		TopK:                DefaultTopK,
		SimilarityThreshold: DefaultSimilarityThreshold,
		CallTimeout:         15 * time.Second,
		MaxConcurrentItems:  1,
	}
}

// RecommendationUseCase прогоняет каждую позицию корзины через пайплайн:
// эмбеддинг, поиск соседей, порог схожести, проверка моделью, сборка результата.
// Ошибка одной позиции не влияет на остальные.
type RecommendationUseCase struct {
	embeddings    *EmbeddingGenerator
	vectorRepo    VectorRepository
	nutritionRepo NutritionRepository
	cacheRepo     CacheRepository
	validator     *SemanticValidator
	imageLinks    ImageLinkInfra
	opts          RecommendOptions
	logger        logger.Logger
}

// NewRecommendationUC создаёт оркестратор. cacheRepo и imageLinks могут быть nil.
func NewRecommendationUC(
	embeddings *EmbeddingGenerator,
	vectorRepo VectorRepository,
	nutritionRepo NutritionRepository,
	cacheRepo CacheRepository,
	validator *SemanticValidator,
	imageLinks ImageLinkInfra,
	opts RecommendOptions,
	logger logger.Logger,
) *RecommendationUseCase {
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	// порог вне (0, 1] и NaN считаются незаданными
	if !(opts.SimilarityThreshold > 0) || opts.SimilarityThreshold > 1 {
		opts.SimilarityThreshold = DefaultSimilarityThreshold
	}

	return &RecommendationUseCase{
		embeddings:    embeddings,
		vectorRepo:    vectorRepo,
		nutritionRepo: nutritionRepo,
		cacheRepo:     cacheRepo,
		validator:     validator,
		imageLinks:    imageLinks,
		opts:          opts,
		logger:        logger,
	}
}

// Recommend возвращает рекомендации для всех позиций запроса.
// Ошибкой завершается только запрос с неизвестным режимом; сбои позиций попадают в сводку.
func (r *RecommendationUseCase) Recommend(ctx context.Context, req *RecommendReq) (*RecommendRes, error) {
	const op = "RecommendationUseCase.Recommend"

	if req == nil {
		return nil, e.Wrap(op, e.ErrRequestMalformed)
	}
	if !req.Mode.Valid() {
		return nil, e.Wrap(op, e.ErrUnknownMode)
	}

	runID := uuid.NewString()
	started := time.Now()

	results := r.processItems(ctx, req.Items, req.Mode)

	// Сборка в порядке входа: при повторе id побеждает последняя успешная позиция
	set := make(domain.RecommendationSet, len(results))
	summary := RunSummary{
		Total:   len(results),
		Skipped: make(map[SkipReason]int),
	}
	for _, res := range results {
		if res.Skip == SkipNone && len(res.Recommendations) > 0 {
			set[res.ItemID] = res.Recommendations
			continue
		}

		reason := res.Skip
		if reason == SkipNone {
			reason = SkipNoRecommendations
		}
		summary.Skipped[reason]++
		r.logSkip(runID, res.ItemID, reason, res.Err)
	}
	summary.Recommended = len(set)

	r.logger.Infof(
		"Recommendation run finished. run_id: %s, mode: %s, items: %d, recommended: %d, skipped: %v, took: %s",
		runID, req.Mode, summary.Total, summary.Recommended, summary.Skipped, time.Since(started),
	)

	return NewRecommendRes(set, summary), nil
}

func (r *RecommendationUseCase) processItems(ctx context.Context, items []domain.CartItem, mode domain.Mode) []ItemResult {
	results := make([]ItemResult, len(items))
	if len(items) == 0 {
		return results
	}

	if r.opts.MaxConcurrentItems <= 1 {
		for i := range items {
			results[i] = r.processItem(ctx, items[i], mode)
		}
		return results
	}

	// Каждая горутина пишет только в свой индекс
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.MaxConcurrentItems)
	for i := range items {
		g.Go(func() error {
			results[i] = r.processItem(gCtx, items[i], mode)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// processItem прогоняет одну позицию через пайплайн и возвращает явный результат.
// Паника любого этапа превращается в пропуск этой позиции.
func (r *RecommendationUseCase) processItem(ctx context.Context, item domain.CartItem, mode domain.Mode) (res ItemResult) {
	defer func() {
		if p := recover(); p != nil {
			res = skipItem(item.ID, SkipUpstreamFailed, e.Wrap("RecommendationUseCase.processItem", fmt.Errorf("%w: %v", e.ErrItemPanicked, p)))
		}
	}()

	if err := validateItem(&item); err != nil {
		return skipItem(item.ID, SkipInvalidInput, err)
	}

	// Эмбеддинг
	vector, err := r.embed(ctx, item.EmbeddingQuery())
	if err != nil {
		if errors.Is(err, e.ErrEmbeddingUnavailable) {
			return skipItem(item.ID, SkipEmbeddingUnavailable, err)
		}
		return skipItem(item.ID, SkipUpstreamFailed, err)
	}

	// Поиск ближайших соседей
	matches, err := r.search(ctx, vector, &item, mode)
	if err != nil {
		return skipItem(item.ID, SkipUpstreamFailed, err)
	}

	candidates := FilterCandidates(matches, r.opts.SimilarityThreshold)
	if len(candidates) == 0 {
		return skipItem(item.ID, SkipNoCandidates, nil)
	}

	// Профили пищевой ценности нужны только в режиме NUTRITION_BETTER
	var facts *NutritionFacts
	if mode == domain.ModeNutritionBetter {
		facts, err = r.nutritionFacts(ctx, item.ID, candidates)
		if err != nil {
			return skipItem(item.ID, SkipUpstreamFailed, err)
		}
	}

	verdict, err := r.validate(ctx, &item, candidates, mode, facts)
	if err != nil {
		if errors.Is(err, e.ErrValidationParseFailed) {
			return skipItem(item.ID, SkipParseFailed, err)
		}
		return skipItem(item.ID, SkipUpstreamFailed, err)
	}

	recs := AssembleRecommendations(candidates, verdict, mode, facts)
	if len(recs) == 0 {
		return skipItem(item.ID, SkipNoRecommendations, nil)
	}

	r.linkImages(ctx, recs)

	return newItemResult(item.ID, recs)
}

// validateItem проверяет обязательные поля позиции: id, название и положительную цену.
func validateItem(item *domain.CartItem) error {
	if strings.TrimSpace(item.ID) == "" {
		return e.ErrItemIDRequired
	}
	if strings.TrimSpace(item.Name) == "" {
		return e.ErrProductNameRequired
	}
	if !item.Price.IsPositive() {
		return e.ErrPriceMustBePositive
	}

	return nil
}

func (r *RecommendationUseCase) embed(ctx context.Context, text string) (domain.EmbeddingVector, error) {
	ctx, cancel := r.callContext(ctx)
	defer cancel()

	return r.embeddings.Generate(ctx, text)
}

func (r *RecommendationUseCase) search(
	ctx context.Context,
	vector domain.EmbeddingVector,
	item *domain.CartItem,
	mode domain.Mode,
) ([]domain.ScoredMatch, error) {
	const op = "RecommendationUseCase.search"

	ctx, cancel := r.callContext(ctx)
	defer cancel()

	req := NewSearchReq(vector, r.opts.TopK, nil)
	if mode.PriceBounded() {
		bound := item.Price
		req.PriceUpperBound = &bound
	}

	matches, err := r.vectorRepo.SearchSimilar(ctx, req)
	if err != nil {
		return nil, e.Join(op, e.ErrRetrievalFailed, err)
	}

	return matches, nil
}

// nutritionFacts собирает профили исходного товара и всех кандидатов: сначала из кэша,
// недостающие одним запросом для исходного товара и одним пакетным для кандидатов.
func (r *RecommendationUseCase) nutritionFacts(
	ctx context.Context,
	originalID string,
	candidates []domain.Candidate,
) (*NutritionFacts, error) {
	const op = "RecommendationUseCase.nutritionFacts"

	ctx, cancel := r.callContext(ctx)
	defer cancel()

	candidateIDs := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok || c.ID == "" {
			continue
		}
		seen[c.ID] = struct{}{}
		candidateIDs = append(candidateIDs, c.ID)
	}

	facts := &NutritionFacts{Candidates: make(map[string]*domain.NutritionProfile, len(candidateIDs))}

	// Поиск профилей в кэше
	var cached map[string]*domain.NutritionProfile
	if r.cacheRepo != nil {
		var err error
		cached, err = r.cacheRepo.GetNutritionProfiles(ctx, append([]string{originalID}, candidateIDs...))
		if err != nil {
			r.logger.Warnf("Failed to read nutrition profiles from cache: %v", e.Wrap(op, err))
			cached = nil
		}
	}

	var fetched []*domain.NutritionProfile

	if profile, ok := cached[originalID]; ok {
		facts.Original = profile
	} else {
		profile, err := r.nutritionRepo.GetNutritionProfile(ctx, originalID)
		if err != nil {
			return nil, e.Join(op, e.ErrNutritionLookupFailed, err)
		}
		facts.Original = profile
		if profile != nil {
			fetched = append(fetched, profile)
		}
	}

	missing := make([]string, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		if profile, ok := cached[id]; ok {
			facts.Candidates[id] = profile
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		profiles, err := r.nutritionRepo.GetNutritionProfiles(ctx, missing)
		if err != nil {
			return nil, e.Join(op, e.ErrNutritionLookupFailed, err)
		}
		for _, id := range missing {
			if profile, ok := profiles[id]; ok && profile != nil {
				facts.Candidates[id] = profile
				fetched = append(fetched, profile)
			}
		}
	}

	// Добавление найденных профилей в кэш
	if r.cacheRepo != nil && len(fetched) > 0 {
		cacheCtx, cacheCancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
		defer cacheCancel()

		if err := r.cacheRepo.SetNutritionProfiles(cacheCtx, fetched); err != nil {
			r.logger.Warnf("Failed to cache nutrition profiles: %v", e.Wrap(op, err))
		}
	}

	return facts, nil
}

func (r *RecommendationUseCase) validate(
	ctx context.Context,
	item *domain.CartItem,
	candidates []domain.Candidate,
	mode domain.Mode,
	facts *NutritionFacts,
) (*domain.Verdict, error) {
	ctx, cancel := r.callContext(ctx)
	defer cancel()

	return r.validator.Validate(ctx, item, candidates, mode, facts)
}

// linkImages подставляет временную ссылку для товаров, у которых есть только bucket и путь.
// Ошибка генерации ссылки не исключает рекомендацию.
func (r *RecommendationUseCase) linkImages(ctx context.Context, recs []domain.Recommendation) {
	const op = "RecommendationUseCase.linkImages"

	if r.imageLinks == nil {
		return
	}

	for i := range recs {
		if recs[i].Images.ImageURL != nil {
			continue
		}

		obj := domain.NewImageObject(recs[i].Images.GCPBucket, recs[i].Images.GCPPath)
		if obj == nil {
			continue
		}

		url, err := r.imageLinks.PresignedURL(ctx, *obj)
		if err != nil {
			r.logger.Warnf("Failed to presign image for product %s: %v", recs[i].ID, e.Join(op, e.ErrImageLinkFailed, err))
			continue
		}
		recs[i].Images.ImageURL = &url
	}
}

func (r *RecommendationUseCase) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.CallTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, r.opts.CallTimeout)
}

func (r *RecommendationUseCase) logSkip(runID, itemID string, reason SkipReason, err error) {
	switch reason {
	case SkipUpstreamFailed, SkipParseFailed, SkipEmbeddingUnavailable:
		r.logger.Warnf("Skipping cart item. run_id: %s, item_id: %s, reason: %s, error: %v", runID, itemID, reason, err)
	default:
		if err != nil {
			r.logger.Infof("Skipping cart item. run_id: %s, item_id: %s, reason: %s, error: %v", runID, itemID, reason, err)
			return
		}
		r.logger.Infof("Skipping cart item. run_id: %s, item_id: %s, reason: %s", runID, itemID, reason)
	}
}
