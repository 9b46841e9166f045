package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/okuznetsov/storefront-api/internal/logger"
	"github.com/okuznetsov/storefront-api/internal/models"
)

type CommentReadRepository struct {
	db *sqlx.DB
}

func NewCommentReadRepository(db *sqlx.DB) *CommentReadRepository {
	return &CommentReadRepository{db: db}
}

// ListByPost returns comments for a post, newest first.
func (r *CommentReadRepository) ListByPost(ctx context.Context, postID int64) ([]models.CommentDB, error) {
	const query = `
		SELECT id, content, created_at, post_id, user_id, author
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC, id DESC
	`

	comments := make([]models.CommentDB, 0)
	err := r.db.SelectContext(ctx, &comments, query, postID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{postID},
		"rows", len(comments),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return comments, nil
}

type CommentWriteRepository struct {
	db *sqlx.DB
}

func NewCommentWriteRepository(db *sqlx.DB) *CommentWriteRepository {
	return &CommentWriteRepository{db: db}
}

// Save inserts a new comment, stamping created_at at insertion time, and
// returns the created row. Missing post or user rows are mapped to
// ErrPostMissing / ErrUserMissing.
func (r *CommentWriteRepository) Save(ctx context.Context, postID, userID int64, author, content string) (*models.CommentDB, error) {
	const query = `
		INSERT INTO comments (content, created_at, post_id, user_id, author)
		VALUES ($1, NOW(), $2, $3, $4)
		RETURNING id, content, created_at, post_id, user_id, author
	`
	args := []any{content, postID, userID, author}

	var comment models.CommentDB
	err := r.db.GetContext(ctx, &comment, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		if ce := constraintError(err); ce != nil {
			return nil, ce
		}
		return nil, err
	}

	return &comment, nil
}
