package usecase

import (
	"context"

	"github.com/basketwise/recommender/internal/domain"
)

// EmbedderInfra генерирует эмбеддинг для одной строки текста.
type EmbedderInfra interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ChatInfra отправляет промпт языковой модели и возвращает ответ, который должен быть JSON.
type ChatInfra interface {
	CompleteJSON(ctx context.Context, prompt string, temperature float32) (string, error)
}

// ImageLinkInfra выдаёт временную ссылку на объект в хранилище изображений.
type ImageLinkInfra interface {
	PresignedURL(ctx context.Context, obj domain.ImageObject) (string, error)
}
