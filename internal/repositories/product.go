package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/okuznetsov/storefront-api/internal/logger"
	"github.com/okuznetsov/storefront-api/internal/models"
)

type ProductReadRepository struct {
	db *sqlx.DB
}

func NewProductReadRepository(db *sqlx.DB) *ProductReadRepository {
	return &ProductReadRepository{db: db}
}

// List returns all products joined with their category name, optionally
// filtered to a single category.
func (r *ProductReadRepository) List(ctx context.Context, categoryID *int64) ([]models.ProductWithCategory, error) {
	const query = `
		SELECT p.id, p.name, p.description, p.price, p.stock_quantity,
		       p.image_url, p.category_id, c.name AS category_name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE ($1::BIGINT IS NULL OR p.category_id = $1)
		ORDER BY p.id
	`

	products := make([]models.ProductWithCategory, 0)
	err := r.db.SelectContext(ctx, &products, query, categoryID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{categoryID},
		"rows", len(products),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return products, nil
}

// GetByID returns one product joined with its category name, or (nil, nil)
// when absent.
func (r *ProductReadRepository) GetByID(ctx context.Context, id int64) (*models.ProductWithCategory, error) {
	const query = `
		SELECT p.id, p.name, p.description, p.price, p.stock_quantity,
		       p.image_url, p.category_id, c.name AS category_name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	var product models.ProductWithCategory
	err := r.db.GetContext(ctx, &product, query, id)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &product, nil
}

type ProductWriteRepository struct {
	db *sqlx.DB
}

func NewProductWriteRepository(db *sqlx.DB) *ProductWriteRepository {
	return &ProductWriteRepository{db: db}
}

// Save inserts a new product and returns the created row. A missing category
// is mapped to ErrCategoryMissing.
func (r *ProductWriteRepository) Save(ctx context.Context, p models.ProductDB) (*models.ProductDB, error) {
	const query = `
		INSERT INTO products (name, description, price, stock_quantity, image_url, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, price, stock_quantity, image_url, category_id
	`
	args := []any{p.Name, p.Description, p.Price, p.StockQuantity, p.ImageURL, p.CategoryID}

	var product models.ProductDB
	err := r.db.GetContext(ctx, &product, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		if ce := constraintError(err); ce != nil {
			return nil, ce
		}
		return nil, err
	}

	return &product, nil
}
