package infrastructure

import "strings"

// ObjectKeyFromPath нормализует путь объекта из метаданных товара в ключ хранилища.
// Принимает "path/to.jpg", "/path/to.jpg" и "gs://bucket/path/to.jpg".
func ObjectKeyFromPath(bucket, path string) string {
	key := strings.TrimSpace(path)
	for _, scheme := range []string{"gs://", "s3://"} {
		if strings.HasPrefix(key, scheme) {
			key = strings.TrimPrefix(key, scheme)
			key = strings.TrimPrefix(key, bucket)
			break
		}
	}

	return strings.TrimLeft(key, "/")
}
