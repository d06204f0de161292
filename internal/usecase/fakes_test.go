package usecase

import (
	"context"
	"sync"

	"github.com/basketwise/recommender/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

type fakeEmbedder struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}

	return []float32{float32(len(text)), 1, 0}, nil
}

func (f *fakeEmbedder) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

type fakeVectorRepo struct {
	mu      sync.Mutex
	matches []domain.ScoredMatch
	err     error
	reqs    []SearchReq
}

func (f *fakeVectorRepo) SearchSimilar(_ context.Context, req *SearchReq) ([]domain.ScoredMatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reqs = append(f.reqs, *req)
	if f.err != nil {
		return nil, f.err
	}

	return f.matches, nil
}

type fakeChat struct {
	mu           sync.Mutex
	response     string
	err          error
	prompts      []string
	temperatures []float32
}

func (f *fakeChat) CompleteJSON(_ context.Context, prompt string, temperature float32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prompts = append(f.prompts, prompt)
	f.temperatures = append(f.temperatures, temperature)
	if f.err != nil {
		return "", f.err
	}

	return f.response, nil
}

func (f *fakeChat) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.prompts)
}

type fakeNutritionRepo struct {
	profiles   map[string]*domain.NutritionProfile
	err        error
	singleIDs  []string
	batchCalls [][]string
}

func (f *fakeNutritionRepo) GetNutritionProfile(_ context.Context, productID string) (*domain.NutritionProfile, error) {
	f.singleIDs = append(f.singleIDs, productID)
	if f.err != nil {
		return nil, f.err
	}

	return f.profiles[productID], nil
}

func (f *fakeNutritionRepo) GetNutritionProfiles(_ context.Context, productIDs []string) (map[string]*domain.NutritionProfile, error) {
	f.batchCalls = append(f.batchCalls, productIDs)
	if f.err != nil {
		return nil, f.err
	}

	out := make(map[string]*domain.NutritionProfile)
	for _, id := range productIDs {
		if p, ok := f.profiles[id]; ok {
			out[id] = p
		}
	}

	return out, nil
}

type fakeCache struct {
	embeddings map[string]domain.EmbeddingVector
	nutrition  map[string]*domain.NutritionProfile
	getErr     error
	setErr     error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		embeddings: make(map[string]domain.EmbeddingVector),
		nutrition:  make(map[string]*domain.NutritionProfile),
	}
}

func (f *fakeCache) GetEmbedding(_ context.Context, text string) (domain.EmbeddingVector, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	return f.embeddings[text], nil
}

func (f *fakeCache) SetEmbedding(_ context.Context, text string, vector domain.EmbeddingVector) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.embeddings[text] = vector

	return nil
}

func (f *fakeCache) GetNutritionProfiles(_ context.Context, ids []string) (map[string]*domain.NutritionProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	out := make(map[string]*domain.NutritionProfile)
	for _, id := range ids {
		if p, ok := f.nutrition[id]; ok {
			out[id] = p
		}
	}

	return out, nil
}

func (f *fakeCache) SetNutritionProfiles(_ context.Context, profiles []*domain.NutritionProfile) error {
	if f.setErr != nil {
		return f.setErr
	}
	for _, p := range profiles {
		f.nutrition[p.ProductID] = p
	}

	return nil
}

type fakeImageLinker struct {
	err  error
	objs []domain.ImageObject
}

func (f *fakeImageLinker) PresignedURL(_ context.Context, obj domain.ImageObject) (string, error) {
	f.objs = append(f.objs, obj)
	if f.err != nil {
		return "", f.err
	}

	return "https://signed.example/" + obj.Bucket + "/" + obj.ObjectKey, nil
}
