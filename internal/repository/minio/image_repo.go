package minio

import (
	"context"
	"net/url"
	"time"

	"github.com/basketwise/recommender/internal/domain"
	"github.com/basketwise/recommender/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ImageRepo выдаёт подписанные ссылки на изображения товаров в S3-совместимом хранилище.
type ImageRepo struct {
	mc *minio.Client
}

func NewImageRepo(mc *minio.Client) *ImageRepo {
	return &ImageRepo{
		mc: mc,
	}
}

// PresignGet возвращает подписанный GET-URL объекта. Подпись считается локально, без запроса к хранилищу.
func (i *ImageRepo) PresignGet(ctx context.Context, obj domain.ImageObject, expiry time.Duration) (*url.URL, error) {
	u, err := i.mc.PresignedGetObject(ctx, obj.Bucket, obj.ObjectKey, expiry, url.Values{})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u, nil
}
