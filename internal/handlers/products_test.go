package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/okuznetsov/storefront-api/internal/models"
	"github.com/okuznetsov/storefront-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestListProductsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	products := []models.ProductWithCategory{
		{ProductDB: models.ProductDB{ID: 1, Name: "Keyboard", CategoryID: 2}, CategoryName: "Peripherals"},
	}

	t.Run("all products", func(t *testing.T) {
		mockSvc := NewMockProductLister(ctrl)
		mockSvc.EXPECT().ListProducts(gomock.Any(), gomock.Nil()).Return(products, nil)

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		rr := httptest.NewRecorder()
		NewListProductsHandler(mockSvc)(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp []map[string]any
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp, 1)
		assert.Equal(t, "Peripherals", resp[0]["category_name"])
	})

	t.Run("filtered by category", func(t *testing.T) {
		categoryID := int64(2)
		mockSvc := NewMockProductLister(ctrl)
		mockSvc.EXPECT().ListProducts(gomock.Any(), &categoryID).Return(products, nil)

		req := httptest.NewRequest(http.MethodGet, "/products?category_id=2", nil)
		rr := httptest.NewRecorder()
		NewListProductsHandler(mockSvc)(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("empty match is an empty array", func(t *testing.T) {
		categoryID := int64(9)
		mockSvc := NewMockProductLister(ctrl)
		mockSvc.EXPECT().ListProducts(gomock.Any(), &categoryID).Return([]models.ProductWithCategory{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/products?category_id=9", nil)
		rr := httptest.NewRecorder()
		NewListProductsHandler(mockSvc)(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("invalid category_id", func(t *testing.T) {
		mockSvc := NewMockProductLister(ctrl)

		req := httptest.NewRequest(http.MethodGet, "/products?category_id=abc", nil)
		rr := httptest.NewRecorder()
		NewListProductsHandler(mockSvc)(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetProductHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	newRouter := func(svc ProductGetter) *chi.Mux {
		r := chi.NewRouter()
		r.Get("/products/{id}", NewGetProductHandler(svc))
		return r
	}

	t.Run("found", func(t *testing.T) {
		mockSvc := NewMockProductGetter(ctrl)
		mockSvc.EXPECT().GetProduct(gomock.Any(), int64(5)).Return(&models.ProductWithCategory{
			ProductDB:    models.ProductDB{ID: 5, Name: "Headphones", CategoryID: 1},
			CategoryName: "Audio",
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/products/5", nil)
		rr := httptest.NewRecorder()
		newRouter(mockSvc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]any
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Audio", resp["category_name"])
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := NewMockProductGetter(ctrl)
		mockSvc.EXPECT().GetProduct(gomock.Any(), int64(404)).Return(nil, services.ErrProductNotFound)

		req := httptest.NewRequest(http.MethodGet, "/products/404", nil)
		rr := httptest.NewRecorder()
		newRouter(mockSvc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		mockSvc := NewMockProductGetter(ctrl)

		req := httptest.NewRequest(http.MethodGet, "/products/abc", nil)
		rr := httptest.NewRecorder()
		newRouter(mockSvc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCreateProductHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	validBody := `{"name":"Mouse","description":"Wireless","price":49.99,"stock_quantity":5,"category_id":3}`

	tests := []struct {
		name            string
		body            string
		mockSetup       func(m *MockProductCreator)
		expectedCode    int
		expectedMessage string
	}{
		{
			name: "success",
			body: validBody,
			mockSetup: func(m *MockProductCreator) {
				m.EXPECT().
					CreateProduct(gomock.Any(), models.ProductDB{
						Name: "Mouse", Description: "Wireless", Price: 49.99, StockQuantity: 5, CategoryID: 3,
					}).
					Return(&models.ProductDB{
						ID: 7, Name: "Mouse", Description: "Wireless", Price: 49.99, StockQuantity: 5, CategoryID: 3,
					}, nil)
			},
			expectedCode:    http.StatusCreated,
			expectedMessage: "Product created successfully",
		},
		{
			name:            "missing fields",
			body:            `{"name":"Mouse"}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Name, description, price, stock_quantity and category_id are required",
		},
		{
			name:            "negative price",
			body:            `{"name":"Mouse","description":"Wireless","price":-1,"stock_quantity":5,"category_id":3}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Price must be non-negative",
		},
		{
			name:            "negative stock",
			body:            `{"name":"Mouse","description":"Wireless","price":1,"stock_quantity":-5,"category_id":3}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Stock quantity must be non-negative",
		},
		{
			name: "unknown category",
			body: validBody,
			mockSetup: func(m *MockProductCreator) {
				m.EXPECT().
					CreateProduct(gomock.Any(), gomock.Any()).
					Return(nil, services.ErrCategoryNotFound)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Category does not exist",
		},
		{
			name:            "invalid json",
			body:            `{invalid json}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockProductCreator(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			NewCreateProductHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]any
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMessage, resp["message"])
		})
	}
}
