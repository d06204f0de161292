package minio

import (
	"context"
	"net/url"
	"time"

	"github.com/basketwise/recommender/internal/cfg"
	"github.com/basketwise/recommender/internal/domain"
	"github.com/basketwise/recommender/internal/infrastructure"
	"github.com/basketwise/recommender/pkg/e"
)

// imagePresigner — хранилище, умеющее подписывать ссылки на объекты.
type imagePresigner interface {
	PresignGet(ctx context.Context, obj domain.ImageObject, expiry time.Duration) (*url.URL, error)
}

// ImageLinker превращает пару bucket/path из метаданных товара во временную публичную ссылку.
type ImageLinker struct {
	imageRepo imagePresigner
	expiry    time.Duration
}

func NewImageLinker(imageRepo imagePresigner, cfg *cfg.MinIOCfg) *ImageLinker {
	return &ImageLinker{
		imageRepo: imageRepo,
		expiry:    cfg.PresignExpiry,
	}
}

// PresignedURL возвращает подписанную ссылку на изображение.
func (m *ImageLinker) PresignedURL(ctx context.Context, obj domain.ImageObject) (string, error) {
	const op = "ImageLinker.PresignedURL"

	obj.ObjectKey = infrastructure.ObjectKeyFromPath(obj.Bucket, obj.ObjectKey)
	if obj.Bucket == "" || obj.ObjectKey == "" {
		return "", e.Wrap(op, e.ErrImageLinkFailed)
	}

	u, err := m.imageRepo.PresignGet(ctx, obj, m.expiry)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	return u.String(), nil
}
