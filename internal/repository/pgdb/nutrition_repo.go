package pgdb

import (
	"context"
	"errors"

	"github.com/basketwise/recommender/internal/domain"
	"github.com/basketwise/recommender/internal/repository/pgdb/converter"
	"github.com/basketwise/recommender/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// NutritionRepo читает профили пищевой ценности из grocery_products.
// Идентификаторы сравниваются как текст, чтобы принимать и числовые, и строковые ID.
type NutritionRepo struct {
	pool *pgxpool.Pool
}

func NewNutritionRepo(pool *pgxpool.Pool) *NutritionRepo {
	return &NutritionRepo{
		pool: pool,
	}
}

// GetNutritionProfile возвращает профиль товара или nil, если товара нет.
func (n *NutritionRepo) GetNutritionProfile(ctx context.Context, productID string) (*domain.NutritionProfile, error) {
	query := `
		SELECT id::text, nutrition_profile
		FROM grocery_products
		WHERE id::text = $1
		LIMIT 1
	`

	var model converter.NutritionProfileModel
	err := n.pool.QueryRow(ctx, query, productID).Scan(&model.ID, &model.NutritionProfile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return converter.ToEntity(&model), nil
}

// GetNutritionProfiles возвращает профили найденных товаров; отсутствующие ID в результат не попадают.
func (n *NutritionRepo) GetNutritionProfiles(ctx context.Context, productIDs []string) (map[string]*domain.NutritionProfile, error) {
	if len(productIDs) == 0 {
		return map[string]*domain.NutritionProfile{}, nil
	}

	query := `
		SELECT id::text, nutrition_profile
		FROM grocery_products
		WHERE id::text = ANY($1)
	`

	rows, err := n.pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.NutritionProfileModel, 0, len(productIDs))
	for rows.Next() {
		var model converter.NutritionProfileModel
		if err := rows.Scan(&model.ID, &model.NutritionProfile); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return converter.ToArrEntity(models), nil
}
