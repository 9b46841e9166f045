package services

import (
	"context"
	"errors"

	"github.com/okuznetsov/storefront-api/internal/logger"
	"github.com/okuznetsov/storefront-api/internal/models"
	"github.com/okuznetsov/storefront-api/internal/repositories"
)

// Error variables
var (
	ErrProductNotFound       = errors.New("product not found")
	ErrCategoryNotFound      = errors.New("category does not exist")
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

// ProductReader defines read-only operations for products.
type ProductReader interface {
	List(ctx context.Context, categoryID *int64) ([]models.ProductWithCategory, error)
	GetByID(ctx context.Context, id int64) (*models.ProductWithCategory, error)
}

// ProductWriter defines write operations for products.
type ProductWriter interface {
	Save(ctx context.Context, p models.ProductDB) (*models.ProductDB, error)
}

// CategoryReader defines read-only operations for categories.
type CategoryReader interface {
	List(ctx context.Context) ([]models.CategoryDB, error)
}

// CategoryWriter defines write operations for categories.
type CategoryWriter interface {
	Save(ctx context.Context, name string) (*models.CategoryDB, error)
}

// CatalogService handles products and their categories.
type CatalogService struct {
	products       ProductReader
	productWriter  ProductWriter
	categories     CategoryReader
	categoryWriter CategoryWriter
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(products ProductReader, productWriter ProductWriter, categories CategoryReader, categoryWriter CategoryWriter) *CatalogService {
	return &CatalogService{
		products:       products,
		productWriter:  productWriter,
		categories:     categories,
		categoryWriter: categoryWriter,
	}
}

// ListProducts returns all products, optionally filtered to one category.
func (svc *CatalogService) ListProducts(ctx context.Context, categoryID *int64) ([]models.ProductWithCategory, error) {
	return svc.products.List(ctx, categoryID)
}

// GetProduct returns one product with its category name.
func (svc *CatalogService) GetProduct(ctx context.Context, id int64) (*models.ProductWithCategory, error) {
	product, err := svc.products.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get product", "id", id, "err", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct inserts a product unconditionally. A dangling category
// reference surfaces as ErrCategoryNotFound.
func (svc *CatalogService) CreateProduct(ctx context.Context, p models.ProductDB) (*models.ProductDB, error) {
	product, err := svc.productWriter.Save(ctx, p)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryMissing) {
			logger.Log.Errorw("product references missing category", "category_id", p.CategoryID)
			return nil, ErrCategoryNotFound
		}
		logger.Log.Errorw("failed to save product", "err", err)
		return nil, err
	}
	return product, nil
}

// ListCategories returns all product categories.
func (svc *CatalogService) ListCategories(ctx context.Context) ([]models.CategoryDB, error) {
	return svc.categories.List(ctx)
}

// CreateCategory inserts a category with a globally unique name.
func (svc *CatalogService) CreateCategory(ctx context.Context, name string) (*models.CategoryDB, error) {
	category, err := svc.categoryWriter.Save(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNameTaken) {
			logger.Log.Errorw("category already exists", "name", name)
			return nil, ErrCategoryAlreadyExists
		}
		logger.Log.Errorw("failed to save category", "err", err)
		return nil, err
	}
	return category, nil
}
