package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/okuznetsov/storefront-api/internal/logger"
	"github.com/okuznetsov/storefront-api/internal/models"
)

type CategoryReadRepository struct {
	db *sqlx.DB
}

func NewCategoryReadRepository(db *sqlx.DB) *CategoryReadRepository {
	return &CategoryReadRepository{db: db}
}

// List returns all categories ordered by id.
func (r *CategoryReadRepository) List(ctx context.Context) ([]models.CategoryDB, error) {
	const query = `
		SELECT id, name
		FROM categories
		ORDER BY id
	`

	categories := make([]models.CategoryDB, 0)
	err := r.db.SelectContext(ctx, &categories, query)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"rows", len(categories),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return categories, nil
}

type CategoryWriteRepository struct {
	db *sqlx.DB
}

func NewCategoryWriteRepository(db *sqlx.DB) *CategoryWriteRepository {
	return &CategoryWriteRepository{db: db}
}

// Save inserts a new category and returns the created row. A duplicate name
// is mapped to ErrCategoryNameTaken.
func (r *CategoryWriteRepository) Save(ctx context.Context, name string) (*models.CategoryDB, error) {
	const query = `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, name
	`

	var category models.CategoryDB
	err := r.db.GetContext(ctx, &category, query, name)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{name},
		"error", err,
	)

	if err != nil {
		if ce := constraintError(err); ce != nil {
			return nil, ce
		}
		return nil, err
	}

	return &category, nil
}
