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

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, email, username, password string, isAdmin bool) (*models.UserDB, string, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`

	// Username
	// required: true
	// example: john_doe
	Username string `json:"username"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`

	// Admin flag
	// example: false
	IsAdmin bool `json:"is_admin"`
}

// AuthUser is the user payload returned by the auth endpoints
// swagger:model AuthUser
type AuthUser struct {
	// User id
	// example: 1
	ID int64 `json:"id"`

	// Email
	// example: john@example.com
	Email string `json:"email"`

	// Username
	// example: john_doe
	Username string `json:"username"`

	// Admin flag
	// example: false
	IsAdmin bool `json:"is_admin"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// example: User registered successfully
	Message string `json:"message"`

	// Bearer token for the new user
	Token string `json:"token"`

	// Created user
	User AuthUser `json:"user"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with a unique email and username. The password is hashed before storing and a bearer token is issued immediately.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Missing fields or email/username already taken"
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Email == "" || req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Email, username and password are required")
			return
		}

		user, token, err := svc.Register(r.Context(), req.Email, req.Username, req.Password, req.IsAdmin)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailAlreadyRegistered):
				writeError(w, http.StatusBadRequest, "Email already registered")
			case errors.Is(err, services.ErrUsernameAlreadyTaken):
				writeError(w, http.StatusBadRequest, "Username already taken")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			Message: "User registered successfully",
			Token:   token,
			User: AuthUser{
				ID:       user.ID,
				Email:    user.Email,
				Username: user.Username,
				IsAdmin:  user.IsAdmin,
			},
		})
	}
}
