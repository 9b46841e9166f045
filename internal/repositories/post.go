package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/okuznetsov/storefront-api/internal/logger"
	"github.com/okuznetsov/storefront-api/internal/models"
)

type PostReadRepository struct {
	db *sqlx.DB
}

func NewPostReadRepository(db *sqlx.DB) *PostReadRepository {
	return &PostReadRepository{db: db}
}

// List returns posts filtered by exact category and/or tag membership,
// newest first. ISO dates sort correctly as strings.
func (r *PostReadRepository) List(ctx context.Context, category, tag *string) ([]models.PostDB, error) {
	const query = `
		SELECT id, title, excerpt, content, date, author, read_time, image, category, tags
		FROM blog_posts
		WHERE ($1::TEXT IS NULL OR category = $1)
		  AND ($2::TEXT IS NULL OR tags @> to_jsonb($2::TEXT))
		ORDER BY date DESC, id DESC
	`

	posts := make([]models.PostDB, 0)
	err := r.db.SelectContext(ctx, &posts, query, category, tag)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{category, tag},
		"rows", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return posts, nil
}

// GetByID returns one post, or (nil, nil) when absent.
func (r *PostReadRepository) GetByID(ctx context.Context, id int64) (*models.PostDB, error) {
	const query = `
		SELECT id, title, excerpt, content, date, author, read_time, image, category, tags
		FROM blog_posts
		WHERE id = $1
	`

	var post models.PostDB
	err := r.db.GetContext(ctx, &post, query, id)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// DistinctCategories returns the set of category values present across posts.
func (r *PostReadRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	const query = `
		SELECT DISTINCT category
		FROM blog_posts
		ORDER BY category
	`

	categories := make([]string, 0)
	err := r.db.SelectContext(ctx, &categories, query)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"rows", len(categories),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return categories, nil
}

// DistinctTags returns the deduplicated union of all tags across posts.
func (r *PostReadRepository) DistinctTags(ctx context.Context) ([]string, error) {
	const query = `
		SELECT DISTINCT tag
		FROM blog_posts, jsonb_array_elements_text(tags) AS tag
		ORDER BY tag
	`

	tags := make([]string, 0)
	err := r.db.SelectContext(ctx, &tags, query)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"rows", len(tags),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return tags, nil
}

type PostWriteRepository struct {
	db *sqlx.DB
}

func NewPostWriteRepository(db *sqlx.DB) *PostWriteRepository {
	return &PostWriteRepository{db: db}
}

// Save inserts a new post unconditionally and returns the created row.
func (r *PostWriteRepository) Save(ctx context.Context, p models.PostDB) (*models.PostDB, error) {
	const query = `
		INSERT INTO blog_posts (title, excerpt, content, date, author, read_time, image, category, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, title, excerpt, content, date, author, read_time, image, category, tags
	`
	args := []any{p.Title, p.Excerpt, p.Content, p.Date, p.Author, p.ReadTime, p.Image, p.Category, p.Tags}

	var post models.PostDB
	err := r.db.GetContext(ctx, &post, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &post, nil
}
