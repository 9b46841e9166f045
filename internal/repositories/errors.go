package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Errors surfaced when an insert violates a database constraint.
var (
	ErrEmailTaken        = errors.New("email already registered")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrCategoryNameTaken = errors.New("category name already exists")
	ErrCategoryMissing   = errors.New("referenced category does not exist")
	ErrPostMissing       = errors.New("referenced post does not exist")
	ErrUserMissing       = errors.New("referenced user does not exist")
)

// PostgreSQL error codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// byConstraint maps schema constraint names to domain errors.
var byConstraint = map[string]error{
	"users_email_key":           ErrEmailTaken,
	"users_username_key":        ErrUsernameTaken,
	"categories_name_key":       ErrCategoryNameTaken,
	"products_category_id_fkey": ErrCategoryMissing,
	"comments_post_id_fkey":     ErrPostMissing,
	"comments_user_id_fkey":     ErrUserMissing,
}

// constraintError translates a PostgreSQL unique or foreign-key violation
// into its domain error. Returns nil when err is not a mapped violation,
// letting callers pass the original error through.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	if pgErr.Code != codeUniqueViolation && pgErr.Code != codeForeignKeyViolation {
		return nil
	}
	return byConstraint[pgErr.ConstraintName]
}
