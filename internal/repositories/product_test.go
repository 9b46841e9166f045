package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/okuznetsov/storefront-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{"id", "name", "description", "price", "stock_quantity", "image_url", "category_id", "category_name"}

func TestProductReadRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductReadRepository(db)

	t.Run("all products", func(t *testing.T) {
		rows := sqlmock.NewRows(productColumns).
			AddRow(int64(1), "Keyboard", "Mechanical", 99.5, 10, nil, int64(2), "Peripherals")
		mock.ExpectQuery(regexp.QuoteMeta("FROM products p")).
			WithArgs(nil).
			WillReturnRows(rows)

		products, err := repo.List(context.Background(), nil)
		assert.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Peripherals", products[0].CategoryName)
		assert.Nil(t, products[0].ImageURL)
	})

	t.Run("filtered by category", func(t *testing.T) {
		categoryID := int64(2)
		rows := sqlmock.NewRows(productColumns).
			AddRow(int64(1), "Keyboard", "Mechanical", 99.5, 10, "kb.png", int64(2), "Peripherals")
		mock.ExpectQuery(regexp.QuoteMeta("FROM products p")).
			WithArgs(categoryID).
			WillReturnRows(rows)

		products, err := repo.List(context.Background(), &categoryID)
		assert.NoError(t, err)
		require.Len(t, products, 1)
		require.NotNil(t, products[0].ImageURL)
		assert.Equal(t, "kb.png", *products[0].ImageURL)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		categoryID := int64(9)
		mock.ExpectQuery(regexp.QuoteMeta("FROM products p")).
			WithArgs(categoryID).
			WillReturnRows(sqlmock.NewRows(productColumns))

		products, err := repo.List(context.Background(), &categoryID)
		assert.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductReadRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductReadRepository(db)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(productColumns).
			AddRow(int64(5), "Headphones", "Over-ear", 199.0, 3, nil, int64(1), "Audio")
		mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
			WithArgs(int64(5)).
			WillReturnRows(rows)

		product, err := repo.GetByID(context.Background(), 5)
		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "Audio", product.CategoryName)
	})

	t.Run("absent returns nil without error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows(productColumns))

		product, err := repo.GetByID(context.Background(), 404)
		assert.NoError(t, err)
		assert.Nil(t, product)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductWriteRepository(db)

	input := models.ProductDB{Name: "Mouse", Description: "Wireless", Price: 49.99, StockQuantity: 5, CategoryID: 3}

	t.Run("created", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "description", "price", "stock_quantity", "image_url", "category_id"}).
			AddRow(int64(7), "Mouse", "Wireless", 49.99, 5, nil, int64(3))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
			WithArgs("Mouse", "Wireless", 49.99, 5, nil, int64(3)).
			WillReturnRows(rows)

		product, err := repo.Save(context.Background(), input)
		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, int64(7), product.ID)
	})

	t.Run("unknown category", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
			WithArgs("Mouse", "Wireless", 49.99, 5, nil, int64(3)).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "products_category_id_fkey"})

		product, err := repo.Save(context.Background(), input)
		assert.ErrorIs(t, err, ErrCategoryMissing)
		assert.Nil(t, product)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
