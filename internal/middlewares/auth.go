package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okuznetsov/storefront-api/internal/logger"
	"github.com/okuznetsov/storefront-api/internal/models"
)

// Tokener defines the token operations needed by the guards.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetUserID(ctx context.Context, tokenString string) (int64, error)
}

// UserFinder loads the user bound to a token.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// Authenticator provides the two route guards: Authenticate (any valid
// token) and RequireAdmin (valid token whose user has the admin flag).
// Both share one resolver and fail closed: missing token, malformed or
// expired token and a token bound to a deleted user all produce 403.
type Authenticator struct {
	tokener Tokener
	users   UserFinder
}

// NewAuthenticator creates a new Authenticator instance.
func NewAuthenticator(tokener Tokener, users UserFinder) *Authenticator {
	return &Authenticator{
		tokener: tokener,
		users:   users,
	}
}

// Authenticate admits any request carrying a valid token and stores the
// resolved user in the request context.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.resolve(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(setUserToContext(r.Context(), user)))
	})
}

// RequireAdmin admits only requests whose token resolves to an admin user.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.resolve(w, r)
		if !ok {
			return
		}
		if !user.IsAdmin {
			logger.Log.Errorw("admin privileges required", "user_id", user.ID)
			forbidden(w, "Admin privileges required!")
			return
		}
		next.ServeHTTP(w, r.WithContext(setUserToContext(r.Context(), user)))
	})
}

// resolve loads the caller bound to the request token, writing the 403
// response itself on any failure.
func (a *Authenticator) resolve(w http.ResponseWriter, r *http.Request) (*models.UserDB, bool) {
	ctx := r.Context()

	tokenString, err := a.tokener.GetTokenFromRequest(ctx, r)
	if err != nil {
		logger.Log.Errorw("authorization failed", "err", err)
		forbidden(w, "Token is missing!")
		return nil, false
	}

	userID, err := a.tokener.GetUserID(ctx, tokenString)
	if err != nil {
		logger.Log.Errorw("authorization failed", "err", err)
		forbidden(w, "Token is invalid!")
		return nil, false
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil || user == nil {
		logger.Log.Errorw("authorization failed", "user_id", userID, "err", err)
		forbidden(w, "Token is invalid!")
		return nil, false
	}

	return user, true
}

func forbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// userKey is an unexported type for the current-user context key.
type userKey struct{}

// setUserToContext stores the authenticated user in the context.
func setUserToContext(ctx context.Context, user *models.UserDB) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUserFromContext retrieves the authenticated user from the context.
// Returns nil if not present.
func GetUserFromContext(ctx context.Context) *models.UserDB {
	user, _ := ctx.Value(userKey{}).(*models.UserDB)
	return user
}
