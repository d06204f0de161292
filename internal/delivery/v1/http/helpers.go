package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/basketwise/recommender/internal/domain"
	"github.com/basketwise/recommender/pkg/e"
	"github.com/basketwise/recommender/pkg/logger"
	"github.com/jimlawless/whereami"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrRequestMalformed):
		return http.StatusBadRequest, e.ErrRequestMalformed.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrUnknownMode):
		return http.StatusBadRequest, e.ErrUnknownMode.Error()
	case errors.Is(err, e.ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrRequestTooLarge.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeCartItems разбирает тело {"items":[...]}.
// Ошибкой считается только тело, не являющееся JSON-объектом, или items не массив.
// Элементы, которые не удалось разобрать, пропускаются: их отсев — дело пайплайна.
func decodeCartItems(body io.Reader, logger logger.Logger) ([]domain.CartItem, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrRequestTooLarge)
		}
		return nil, e.Wrap(whereami.WhereAmI(), e.Join("read body", e.ErrStatusBadRequest, err))
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrRequestMalformed)
	}

	var req RecommendationsRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.Join("decode body", e.ErrRequestMalformed, err))
	}

	itemsRaw := bytes.TrimSpace(req.Items)
	if len(itemsRaw) == 0 || bytes.Equal(itemsRaw, []byte("null")) {
		return []domain.CartItem{}, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(itemsRaw, &elements); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.Join("decode items", e.ErrRequestMalformed, err))
	}

	items := make([]domain.CartItem, 0, len(elements))
	for i, el := range elements {
		el = bytes.TrimSpace(el)
		if len(el) == 0 || el[0] != '{' {
			logger.Warnf("Skipping cart item #%d: not a JSON object", i)
			continue
		}

		var dto CartItemDTO
		if err := json.Unmarshal(el, &dto); err != nil {
			logger.Warnf("Skipping cart item #%d: %v", i, err)
			continue
		}

		items = append(items, *dto.ToDomain())
	}

	return items, nil
}
