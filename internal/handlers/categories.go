package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okuznetsov/storefront-api/internal/logger"
	"github.com/okuznetsov/storefront-api/internal/models"
	"github.com/okuznetsov/storefront-api/internal/services"
)

// CategoryLister defines the interface that the category listing service must implement.
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]models.CategoryDB, error)
}

// CategoryCreator defines the interface that the category creation service must implement.
type CategoryCreator interface {
	CreateCategory(ctx context.Context, name string) (*models.CategoryDB, error)
}

// CreateCategoryRequest represents the JSON body for category creation
// swagger:model CreateCategoryRequest
type CreateCategoryRequest struct {
	// Category name, globally unique
	// required: true
	// example: Keyboards
	Name string `json:"name"`
}

// CreateCategoryResponse represents a successful category creation response
// swagger:model CreateCategoryResponse
type CreateCategoryResponse struct {
	// Success message
	// example: Category created successfully
	Message string `json:"message"`

	// Created category
	Category models.CategoryDB `json:"category"`
}

// NewListCategoriesHandler returns an HTTP handler listing all product categories.
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.CategoryDB "Categories"
// @Router /categories [get]
func NewListCategoriesHandler(svc CategoryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, categories)
	}
}

// NewCreateCategoryHandler returns an HTTP handler creating a category.
// Admin-only; the guard runs as middleware.
// @Summary Create a category
// @Description Inserts a new category with a globally unique name.
// @Tags categories
// @Accept json
// @Produce json
// @Param createCategoryRequest body handlers.CreateCategoryRequest true "Category to create"
// @Success 201 {object} handlers.CreateCategoryResponse "Category created"
// @Failure 400 {object} handlers.ErrorResponse "Missing name or duplicate category"
// @Failure 403 {object} handlers.ErrorResponse "Admin privileges required"
// @Router /categories [post]
// @Security BearerAuth
func NewCreateCategoryHandler(svc CategoryCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCategoryRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "Category name is required")
			return
		}

		category, err := svc.CreateCategory(r.Context(), req.Name)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrCategoryAlreadyExists):
				writeError(w, http.StatusBadRequest, "Category already exists")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, CreateCategoryResponse{
			Message:  "Category created successfully",
			Category: *category,
		})
	}
}
