package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/okuznetsov/storefront-api/internal/models"
	"github.com/okuznetsov/storefront-api/internal/repositories"
	"github.com/okuznetsov/storefront-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func newCatalogService(ctrl *gomock.Controller) (*services.CatalogService, *services.MockProductReader, *services.MockProductWriter, *services.MockCategoryReader, *services.MockCategoryWriter) {
	products := services.NewMockProductReader(ctrl)
	productWriter := services.NewMockProductWriter(ctrl)
	categories := services.NewMockCategoryReader(ctrl)
	categoryWriter := services.NewMockCategoryWriter(ctrl)
	svc := services.NewCatalogService(products, productWriter, categories, categoryWriter)
	return svc, products, productWriter, categories, categoryWriter
}

func TestCatalogService_ListProducts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, products, _, _, _ := newCatalogService(ctrl)

	want := []models.ProductWithCategory{
		{ProductDB: models.ProductDB{ID: 1, Name: "Keyboard", CategoryID: 2}, CategoryName: "Peripherals"},
	}
	categoryID := int64(2)

	products.EXPECT().List(gomock.Any(), &categoryID).Return(want, nil)

	got, err := svc.ListProducts(context.Background(), &categoryID)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCatalogService_GetProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("found", func(t *testing.T) {
		svc, products, _, _, _ := newCatalogService(ctrl)
		want := &models.ProductWithCategory{ProductDB: models.ProductDB{ID: 5}, CategoryName: "Audio"}
		products.EXPECT().GetByID(gomock.Any(), int64(5)).Return(want, nil)

		got, err := svc.GetProduct(context.Background(), 5)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("not found", func(t *testing.T) {
		svc, products, _, _, _ := newCatalogService(ctrl)
		products.EXPECT().GetByID(gomock.Any(), int64(404)).Return(nil, nil)

		got, err := svc.GetProduct(context.Background(), 404)
		assert.ErrorIs(t, err, services.ErrProductNotFound)
		assert.Nil(t, got)
	})

	t.Run("reader error", func(t *testing.T) {
		svc, products, _, _, _ := newCatalogService(ctrl)
		products.EXPECT().GetByID(gomock.Any(), int64(1)).Return(nil, errors.New("db error"))

		got, err := svc.GetProduct(context.Background(), 1)
		assert.EqualError(t, err, "db error")
		assert.Nil(t, got)
	})
}

func TestCatalogService_CreateProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	input := models.ProductDB{Name: "Mouse", Description: "Wireless", Price: 49.99, StockQuantity: 5, CategoryID: 3}

	t.Run("success", func(t *testing.T) {
		svc, _, productWriter, _, _ := newCatalogService(ctrl)
		created := input
		created.ID = 7
		productWriter.EXPECT().Save(gomock.Any(), input).Return(&created, nil)

		got, err := svc.CreateProduct(context.Background(), input)
		assert.NoError(t, err)
		assert.Equal(t, &created, got)
	})

	t.Run("missing category", func(t *testing.T) {
		svc, _, productWriter, _, _ := newCatalogService(ctrl)
		productWriter.EXPECT().Save(gomock.Any(), input).Return(nil, repositories.ErrCategoryMissing)

		got, err := svc.CreateProduct(context.Background(), input)
		assert.ErrorIs(t, err, services.ErrCategoryNotFound)
		assert.Nil(t, got)
	})
}

func TestCatalogService_CreateCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success", func(t *testing.T) {
		svc, _, _, _, categoryWriter := newCatalogService(ctrl)
		want := &models.CategoryDB{ID: 1, Name: "Test"}
		categoryWriter.EXPECT().Save(gomock.Any(), "Test").Return(want, nil)

		got, err := svc.CreateCategory(context.Background(), "Test")
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc, _, _, _, categoryWriter := newCatalogService(ctrl)
		categoryWriter.EXPECT().Save(gomock.Any(), "Test").Return(nil, repositories.ErrCategoryNameTaken)

		got, err := svc.CreateCategory(context.Background(), "Test")
		assert.ErrorIs(t, err, services.ErrCategoryAlreadyExists)
		assert.Nil(t, got)
	})
}

func TestCatalogService_ListCategories(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, categories, _ := newCatalogService(ctrl)

	want := []models.CategoryDB{{ID: 1, Name: "Audio"}, {ID: 2, Name: "Peripherals"}}
	categories.EXPECT().List(gomock.Any()).Return(want, nil)

	got, err := svc.ListCategories(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}
