package clients

import (
	"context"

	config "github.com/basketwise/recommender/internal/cfg"
	"github.com/basketwise/recommender/pkg/e"
	"github.com/jimlawless/whereami"
	"google.golang.org/genai"
)

// NewGenAIClient создаёт клиент Gemini API или Vertex AI в зависимости от cfg.Backend.
func NewGenAIClient(ctx context.Context, cfg *config.GeminiCfg) (*genai.Client, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Backend == "vertex" {
		clientCfg = &genai.ClientConfig{
			Project:  cfg.Project,
			Location: cfg.Location,
			Backend:  genai.BackendVertexAI,
		}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return client, nil
}
