package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/basketwise/recommender/internal/domain"
	"github.com/basketwise/recommender/pkg/e"
)

const (
	// DefaultValidationTemperature — температура семплирования в обоих режимах.
	DefaultValidationTemperature float32 = 0.5
	// DefaultNutritionReason подставляется, если модель не объяснила выбор.
	DefaultNutritionReason = "Better nutritional value"
)

// SemanticValidator одним запросом к языковой модели проверяет всю пачку кандидатов.
type SemanticValidator struct {
	chat        ChatInfra
	temperature float32
}

func NewSemanticValidator(chat ChatInfra, temperature float32) *SemanticValidator {
	return &SemanticValidator{
		chat:        chat,
		temperature: temperature,
	}
}

// Validate возвращает кандидатов, удовлетворяющих предикату режима, в порядке ответа модели.
// Ординалы в вердикте не проверяются на диапазон, это делает сборщик.
func (v *SemanticValidator) Validate(
	ctx context.Context,
	original *domain.CartItem,
	candidates []domain.Candidate,
	mode domain.Mode,
	facts *NutritionFacts,
) (*domain.Verdict, error) {
	const op = "SemanticValidator.Validate"

	var (
		prompt string
		parse  func(string) (*domain.Verdict, error)
	)
	switch mode {
	case domain.ModeSameType:
		prompt = BuildSameTypePrompt(original, candidates)
		parse = ParseSameTypeVerdict
	case domain.ModeNutritionBetter:
		prompt = BuildNutritionPrompt(original, candidates, facts)
		parse = ParseNutritionVerdict
	default:
		return nil, e.Wrap(op, e.ErrUnknownMode)
	}

	raw, err := v.chat.CompleteJSON(ctx, prompt, v.temperature)
	if err != nil {
		return nil, e.Join(op, e.ErrValidationFailed, err)
	}

	verdict, err := parse(raw)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return verdict, nil
}

// PROMPTS

// BuildSameTypePrompt просит модель отобрать кандидатов того же типа товара.
func BuildSameTypePrompt(original *domain.CartItem, candidates []domain.Candidate) string {
	var b strings.Builder

	b.WriteString("Compare the original product with all candidate products below and determine which candidates ")
	b.WriteString("are the same type of product (e.g., both are hot chocolate, both are eggs, etc.).\n\n")

	b.WriteString("Original Product:\n")
	fmt.Fprintf(&b, "- Name: %s\n", original.Name)
	fmt.Fprintf(&b, "- Description: %s\n", original.Description)
	fmt.Fprintf(&b, "- Price: €%s\n\n", original.Price.StringFixed(2))

	b.WriteString("Candidate Products:\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. Name: %s\n", i+1, c.Name)
		fmt.Fprintf(&b, "   Description: %s\n", c.Description)
		fmt.Fprintf(&b, "   Price: €%s\n", c.Price.StringFixed(2))
		fmt.Fprintf(&b, "   Similarity: %.2f\n", c.Similarity)
	}

	b.WriteString(`
Respond with JSON only in this format:
{
  "valid_products": [1, 3, 5],
  "reasoning": {
    "1": "brief explanation why product 1 is/isn't the same",
    "3": "brief explanation why product 3 is/isn't the same",
    "5": "brief explanation why product 5 is/isn't the same"
  }
}

Where "valid_products" is an array of candidate numbers (1-based) that are the same type as the original product.`)

	return b.String()
}

// BuildNutritionPrompt просит модель отобрать кандидатов, которые полезнее исходного товара.
func BuildNutritionPrompt(original *domain.CartItem, candidates []domain.Candidate, facts *NutritionFacts) string {
	var originalProfile *domain.NutritionProfile
	if facts != nil {
		originalProfile = facts.Original
	}

	var b strings.Builder

	b.WriteString("Compare the original product with all candidate products below and determine which candidates ")
	b.WriteString("are nutritionally better options. Consider factors like: protein content, fiber, vitamins, minerals, ")
	b.WriteString("lower sugar, lower saturated fat, whole grains, etc.\n\n")

	b.WriteString("Original Product:\n")
	fmt.Fprintf(&b, "- Name: %s\n", original.Name)
	fmt.Fprintf(&b, "- Description: %s\n", original.Description)
	fmt.Fprintf(&b, "- Nutrition Profile: %s\n\n", originalProfile.Render())

	b.WriteString("Candidate Products:\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. Name: %s\n", i+1, c.Name)
		fmt.Fprintf(&b, "   Description: %s\n", c.Description)
		fmt.Fprintf(&b, "   Price: €%s\n", c.Price.StringFixed(2))
		fmt.Fprintf(&b, "   Nutrition Profile: %s\n", facts.For(c.ID).Render())
	}

	b.WriteString(`
Respond with JSON only in this format:
{
  "better_products": [
    {
      "index": 1,
      "reason": "Brief explanation why this product is nutritionally better (e.g., 'Higher protein and fiber, lower sugar')"
    },
    {
      "index": 3,
      "reason": "Brief explanation why this product is nutritionally better"
    }
  ]
}

Where "better_products" is an array of candidate objects (1-based index) that are nutritionally better than the original product. Only include products that are clearly better nutritionally.`)

	return b.String()
}

// RESPONSES

type sameTypeResponse struct {
	ValidProducts []json.RawMessage          `json:"valid_products"`
	Reasoning     map[string]json.RawMessage `json:"reasoning"`
}

type nutritionResponse struct {
	BetterProducts []json.RawMessage `json:"better_products"`
}

type betterProduct struct {
	Index  json.RawMessage `json:"index"`
	Reason json.RawMessage `json:"reason"`
}

// ParseSameTypeVerdict разбирает ответ вида {"valid_products":[int], "reasoning":{"<n>":"..."}}.
// Отсутствующий ключ valid_products означает пустой вердикт.
func ParseSameTypeVerdict(raw string) (*domain.Verdict, error) {
	const op = "ParseSameTypeVerdict"

	var resp sameTypeResponse
	if err := decodeObject(raw, &resp); err != nil {
		return nil, e.Join(op, e.ErrValidationParseFailed, err)
	}

	verdict := &domain.Verdict{Accepted: make([]domain.Acceptance, 0, len(resp.ValidProducts))}
	for _, item := range resp.ValidProducts {
		ordinal, ok := parseOrdinal(item)
		if !ok {
			continue
		}

		verdict.Accepted = append(verdict.Accepted, domain.Acceptance{
			Ordinal: ordinal,
			Reason:  rawString(resp.Reasoning[strconv.Itoa(ordinal)]),
		})
	}

	return verdict, nil
}

// ParseNutritionVerdict разбирает ответ вида {"better_products":[{"index":int,"reason":string}]}.
// Элементы без целочисленного index пропускаются, пустая причина заменяется DefaultNutritionReason.
func ParseNutritionVerdict(raw string) (*domain.Verdict, error) {
	const op = "ParseNutritionVerdict"

	var resp nutritionResponse
	if err := decodeObject(raw, &resp); err != nil {
		return nil, e.Join(op, e.ErrValidationParseFailed, err)
	}

	verdict := &domain.Verdict{Accepted: make([]domain.Acceptance, 0, len(resp.BetterProducts))}
	for _, item := range resp.BetterProducts {
		var bp betterProduct
		if err := json.Unmarshal(item, &bp); err != nil {
			continue
		}

		ordinal, ok := parseOrdinal(bp.Index)
		if !ok {
			continue
		}

		reason := strings.TrimSpace(rawString(bp.Reason))
		if reason == "" {
			reason = DefaultNutritionReason
		}

		verdict.Accepted = append(verdict.Accepted, domain.Acceptance{
			Ordinal: ordinal,
			Reason:  reason,
		})
	}

	return verdict, nil
}

// decodeObject требует, чтобы ответ был ровно одним JSON-объектом.
func decodeObject(raw string, dst any) error {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return fmt.Errorf("response is not a JSON object")
	}

	return json.Unmarshal([]byte(trimmed), dst)
}

// parseOrdinal принимает только целые JSON-числа; строки и дробные значения отклоняются.
func parseOrdinal(raw json.RawMessage) (int, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || strings.HasPrefix(trimmed, `"`) {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal([]byte(trimmed), &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}

	return int(f), true
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}

	return s
}
