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

// PostLister defines the interface that the post listing service must implement.
type PostLister interface {
	ListPosts(ctx context.Context, category, tag *string) ([]models.PostDB, error)
}

// PostGetter defines the interface that the single-post service must implement.
type PostGetter interface {
	GetPost(ctx context.Context, id int64) (*models.PostDB, error)
}

// PostCreator defines the interface that the post creation service must implement.
type PostCreator interface {
	CreatePost(ctx context.Context, p models.PostDB) (*models.PostDB, error)
}

// PostCategoryLister defines the interface returning distinct post categories.
type PostCategoryLister interface {
	ListCategories(ctx context.Context) ([]string, error)
}

// PostTagLister defines the interface returning distinct post tags.
type PostTagLister interface {
	ListTags(ctx context.Context) ([]string, error)
}

// CreatePostRequest represents the JSON body for blog post creation
// swagger:model CreatePostRequest
type CreatePostRequest struct {
	// Post title
	// required: true
	Title string `json:"title"`

	// Short summary
	// required: true
	Excerpt string `json:"excerpt"`

	// Full post body
	// required: true
	Content string `json:"content"`

	// ISO date string
	// required: true
	// example: 2024-03-20
	Date string `json:"date"`

	// Author display name
	// required: true
	Author string `json:"author"`

	// Free-text read time
	// example: 5 min
	ReadTime string `json:"readTime"`

	// Cover image URL
	Image string `json:"image"`

	// Free-text category label
	Category string `json:"category"`

	// Ordered tag list
	Tags []string `json:"tags"`
}

// CreatePostResponse represents a successful post creation response
// swagger:model CreatePostResponse
type CreatePostResponse struct {
	// Success message
	// example: Post created successfully
	Message string `json:"message"`

	// Created post
	Post models.PostDB `json:"post"`
}

// NewListPostsHandler returns an HTTP handler listing blog posts, newest
// first, optionally filtered by category and/or tag.
// @Summary List blog posts
// @Tags blog
// @Produce json
// @Param category query string false "Exact category match"
// @Param tag query string false "Tag membership"
// @Success 200 {array} models.PostDB "Posts, newest first"
// @Router /blog/posts [get]
func NewListPostsHandler(svc PostLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var category, tag *string
		if raw := r.URL.Query().Get("category"); raw != "" {
			category = &raw
		}
		if raw := r.URL.Query().Get("tag"); raw != "" {
			tag = &raw
		}

		posts, err := svc.ListPosts(r.Context(), category, tag)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, posts)
	}
}

// NewGetPostHandler returns an HTTP handler fetching one blog post by id.
// @Summary Get a blog post
// @Tags blog
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} models.PostDB "Post"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /blog/posts/{id} [get]
func NewGetPostHandler(svc PostGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, "Post not found")
			return
		}

		post, err := svc.GetPost(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrPostNotFound):
				writeError(w, http.StatusNotFound, "Post not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, post)
	}
}

// NewCreatePostHandler returns an HTTP handler creating a blog post.
// Admin-only; the guard runs as middleware.
// @Summary Create a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Param createPostRequest body handlers.CreatePostRequest true "Post to create"
// @Success 201 {object} handlers.CreatePostResponse "Post created"
// @Failure 400 {object} handlers.ErrorResponse "Missing required fields"
// @Failure 403 {object} handlers.ErrorResponse "Admin privileges required"
// @Router /blog/posts [post]
// @Security BearerAuth
func NewCreatePostHandler(svc PostCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePostRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Title == "" || req.Excerpt == "" || req.Content == "" || req.Date == "" || req.Author == "" {
			writeError(w, http.StatusBadRequest, "Title, excerpt, content, date and author are required")
			return
		}

		post, err := svc.CreatePost(r.Context(), models.PostDB{
			Title:    req.Title,
			Excerpt:  req.Excerpt,
			Content:  req.Content,
			Date:     req.Date,
			Author:   req.Author,
			ReadTime: req.ReadTime,
			Image:    req.Image,
			Category: req.Category,
			Tags:     models.StringList(req.Tags),
		})
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, CreatePostResponse{
			Message: "Post created successfully",
			Post:    *post,
		})
	}
}

// NewListPostCategoriesHandler returns an HTTP handler listing distinct
// blog post categories.
// @Summary List blog categories
// @Tags blog
// @Produce json
// @Success 200 {array} string "Distinct category values"
// @Router /blog/categories [get]
func NewListPostCategoriesHandler(svc PostCategoryLister) http.HandlerFunc {
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

// NewListPostTagsHandler returns an HTTP handler listing distinct blog post tags.
// @Summary List blog tags
// @Tags blog
// @Produce json
// @Success 200 {array} string "Deduplicated tag union"
// @Router /blog/tags [get]
func NewListPostTagsHandler(svc PostTagLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := svc.ListTags(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, tags)
	}
}
