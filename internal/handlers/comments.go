package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/okuznetsov/storefront-api/internal/logger"
	"github.com/okuznetsov/storefront-api/internal/middlewares"
	"github.com/okuznetsov/storefront-api/internal/models"
	"github.com/okuznetsov/storefront-api/internal/services"
)

// CommentLister defines the interface that the comment listing service must implement.
type CommentLister interface {
	ListComments(ctx context.Context, postID int64) ([]models.CommentDB, error)
}

// CommentCreator defines the interface that the comment creation service must implement.
type CommentCreator interface {
	CreateComment(ctx context.Context, postID int64, user *models.UserDB, content string) (*models.CommentDB, error)
}

// CreateCommentRequest represents the JSON body for comment creation
// swagger:model CreateCommentRequest
type CreateCommentRequest struct {
	// Comment body
	// required: true
	Content string `json:"content"`
}

// CreateCommentResponse represents a successful comment creation response
// swagger:model CreateCommentResponse
type CreateCommentResponse struct {
	// Success message
	// example: Comment created successfully
	Message string `json:"message"`

	// Created comment
	Comment models.CommentDB `json:"comment"`
}

// NewListCommentsHandler returns an HTTP handler listing comments of a post,
// newest first.
// @Summary List comments of a post
// @Tags blog
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {array} models.CommentDB "Comments, newest first"
// @Router /blog/posts/{id}/comments [get]
func NewListCommentsHandler(svc CommentLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, "Post not found")
			return
		}

		comments, err := svc.ListComments(r.Context(), postID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, comments)
	}
}

// NewCreateCommentHandler returns an HTTP handler creating a comment on a
// post. Requires authentication; the guard runs as middleware and stores the
// caller in the request context.
// @Summary Comment on a post
// @Tags blog
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Param createCommentRequest body handlers.CreateCommentRequest true "Comment to create"
// @Success 201 {object} handlers.CreateCommentResponse "Comment created"
// @Failure 400 {object} handlers.ErrorResponse "Empty content"
// @Failure 403 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /blog/posts/{id}/comments [post]
// @Security BearerAuth
func NewCreateCommentHandler(svc CommentCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			// Unreachable behind the guard; fail closed anyway.
			writeError(w, http.StatusForbidden, "Token is invalid!")
			return
		}

		postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, "Post not found")
			return
		}

		var req CreateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Comment content is required")
			return
		}

		comment, err := svc.CreateComment(r.Context(), postID, user, req.Content)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyContent):
				writeError(w, http.StatusBadRequest, "Comment content is required")
			case errors.Is(err, services.ErrPostNotFound):
				writeError(w, http.StatusNotFound, "Post not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, CreateCommentResponse{
			Message: "Comment created successfully",
			Comment: *comment,
		})
	}
}
