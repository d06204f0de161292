package e

import "fmt"

var (
	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrMissingEnvVariable   = fmt.Errorf("required environment variable is missing")

	// Ошибки эмбеддингов
	ErrEmbeddingUnavailable   = fmt.Errorf("embedding model is not initialized")
	ErrEmbeddingRequestFailed = fmt.Errorf("embedding request failed")
	ErrEmptyEmbeddingQuery    = fmt.Errorf("embedding query is empty")
	ErrVectorEmbeddingEmpty   = fmt.Errorf("vector embedding is empty")

	// Ошибки внешних вызовов пайплайна
	ErrRetrievalFailed       = fmt.Errorf("similarity retrieval failed")
	ErrNutritionLookupFailed = fmt.Errorf("nutrition profile lookup failed")
	ErrValidationFailed      = fmt.Errorf("semantic validation failed")
	ErrValidationParseFailed = fmt.Errorf("semantic validation response is malformed")
	ErrImageLinkFailed       = fmt.Errorf("image link generation failed")
	ErrItemPanicked          = fmt.Errorf("cart item pipeline panicked")

	// Ошибки входных данных позиции корзины (позиция пропускается)
	ErrItemIDRequired      = fmt.Errorf("cart item id is required")
	ErrProductNameRequired = fmt.Errorf("product name is required")
	ErrPriceMustBePositive = fmt.Errorf("price must be positive")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrRequestMalformed = fmt.Errorf("request body must be a JSON object with an items list")
	ErrUnknownMode      = fmt.Errorf("unknown recommendation mode")

	// 413 Request Entity Too Large
	ErrRequestTooLarge = fmt.Errorf("request body is too large")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// Join оборачивает причину err сигнальной ошибкой kind, сохраняя обе в цепочке errors.Is.
func Join(msg string, kind error, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, kind, err)
}
