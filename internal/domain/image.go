package domain

// ImageObject описывает изображение товара в объектном хранилище
type ImageObject struct {
	Bucket    string
	ObjectKey string
}

// NewImageObject возвращает nil, если в метаданных нет бакета или пути.
func NewImageObject(bucket, objectKey *string) *ImageObject {
	if bucket == nil || objectKey == nil || *bucket == "" || *objectKey == "" {
		return nil
	}

	return &ImageObject{
		Bucket:    *bucket,
		ObjectKey: *objectKey,
	}
}
