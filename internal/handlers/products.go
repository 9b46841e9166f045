package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/okuznetsov/storefront-api/internal/logger"
	"github.com/okuznetsov/storefront-api/internal/models"
	"github.com/okuznetsov/storefront-api/internal/services"
)

// ProductLister defines the interface that the product listing service must implement.
type ProductLister interface {
	ListProducts(ctx context.Context, categoryID *int64) ([]models.ProductWithCategory, error)
}

// ProductGetter defines the interface that the single-product service must implement.
type ProductGetter interface {
	GetProduct(ctx context.Context, id int64) (*models.ProductWithCategory, error)
}

// ProductCreator defines the interface that the product creation service must implement.
type ProductCreator interface {
	CreateProduct(ctx context.Context, p models.ProductDB) (*models.ProductDB, error)
}

// CreateProductRequest represents the JSON body for product creation.
// Numeric fields are pointers to tell absent from zero.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	// Product name
	// required: true
	// example: Mechanical keyboard
	Name string `json:"name"`

	// Product description
	// required: true
	Description string `json:"description"`

	// Non-negative price
	// required: true
	// example: 129.99
	Price *float64 `json:"price"`

	// Non-negative units in stock
	// required: true
	// example: 25
	StockQuantity *int `json:"stock_quantity"`

	// Optional image URL
	ImageURL *string `json:"image_url"`

	// Id of an existing category
	// required: true
	// example: 1
	CategoryID *int64 `json:"category_id"`
}

// CreateProductResponse represents a successful product creation response
// swagger:model CreateProductResponse
type CreateProductResponse struct {
	// Success message
	// example: Product created successfully
	Message string `json:"message"`

	// Created product
	Product models.ProductDB `json:"product"`
}

// NewListProductsHandler returns an HTTP handler listing all products,
// optionally filtered by category.
// @Summary List products
// @Description Returns all products joined with their category name. An optional category_id query parameter narrows the result to one category.
// @Tags products
// @Produce json
// @Param category_id query int false "Filter by category id"
// @Success 200 {array} models.ProductWithCategory "Products"
// @Failure 400 {object} handlers.ErrorResponse "Invalid category_id"
// @Router /products [get]
func NewListProductsHandler(svc ProductLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var categoryID *int64
		if raw := r.URL.Query().Get("category_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid category_id")
				return
			}
			categoryID = &id
		}

		products, err := svc.ListProducts(r.Context(), categoryID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, products)
	}
}

// NewGetProductHandler returns an HTTP handler fetching one product by id.
// @Summary Get a product
// @Description Returns one product joined with its category name.
// @Tags products
// @Produce json
// @Param id path int true "Product id"
// @Success 200 {object} models.ProductWithCategory "Product"
// @Failure 404 {object} handlers.ErrorResponse "Product not found"
// @Router /products/{id} [get]
func NewGetProductHandler(svc ProductGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrProductNotFound):
				writeError(w, http.StatusNotFound, "Product not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, product)
	}
}

// NewCreateProductHandler returns an HTTP handler creating a product.
// Admin-only; the guard runs as middleware.
// @Summary Create a product
// @Description Inserts a new product. The category_id must reference an existing category.
// @Tags products
// @Accept json
// @Produce json
// @Param createProductRequest body handlers.CreateProductRequest true "Product to create"
// @Success 201 {object} handlers.CreateProductResponse "Product created"
// @Failure 400 {object} handlers.ErrorResponse "Missing fields or unknown category"
// @Failure 403 {object} handlers.ErrorResponse "Admin privileges required"
// @Router /products [post]
// @Security BearerAuth
func NewCreateProductHandler(svc ProductCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProductRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" || req.Description == "" || req.Price == nil || req.StockQuantity == nil || req.CategoryID == nil {
			writeError(w, http.StatusBadRequest, "Name, description, price, stock_quantity and category_id are required")
			return
		}
		if *req.Price < 0 {
			writeError(w, http.StatusBadRequest, "Price must be non-negative")
			return
		}
		if *req.StockQuantity < 0 {
			writeError(w, http.StatusBadRequest, "Stock quantity must be non-negative")
			return
		}

		product, err := svc.CreateProduct(r.Context(), models.ProductDB{
			Name:          req.Name,
			Description:   req.Description,
			Price:         *req.Price,
			StockQuantity: *req.StockQuantity,
			ImageURL:      req.ImageURL,
			CategoryID:    *req.CategoryID,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrCategoryNotFound):
				writeError(w, http.StatusBadRequest, "Category does not exist")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, CreateProductResponse{
			Message: "Product created successfully",
			Product: *product,
		})
	}
}
