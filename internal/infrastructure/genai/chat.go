package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/basketwise/recommender/pkg/e"
	"github.com/jimlawless/whereami"
	"google.golang.org/genai"
)

const jsonMIMEType = "application/json"

// ChatCompleter запрашивает у модели ответ строго в формате JSON.
type ChatCompleter struct {
	client *genai.Client
	model  string
}

func NewChatCompleter(client *genai.Client, model string) *ChatCompleter {
	return &ChatCompleter{
		client: client,
		model:  model,
	}
}

// CompleteJSON отправляет один пользовательский промпт и возвращает текст ответа без разбора.
func (c *ChatCompleter) CompleteJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(temperature),
		ResponseMIMEType: jsonMIMEType,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, cfg)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", e.Wrap(whereami.WhereAmI(), fmt.Errorf("model %s returned an empty response", c.model))
	}

	return text, nil
}
