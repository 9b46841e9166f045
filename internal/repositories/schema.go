package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/okuznetsov/storefront-api/internal/logger"
)

// schema holds the idempotent DDL applied at startup. Constraint names are
// relied upon by the error mapping in errors.go.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		username VARCHAR(50) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		CONSTRAINT users_email_key UNIQUE (email),
		CONSTRAINT users_username_key UNIQUE (username)
	);`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		CONSTRAINT categories_name_key UNIQUE (name)
	);`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		description TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		stock_quantity INTEGER NOT NULL,
		image_url TEXT,
		category_id BIGINT NOT NULL,
		CONSTRAINT products_category_id_fkey FOREIGN KEY (category_id) REFERENCES categories (id)
	);`,
	`CREATE TABLE IF NOT EXISTS blog_posts (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		excerpt TEXT NOT NULL,
		content TEXT NOT NULL,
		date VARCHAR(10) NOT NULL,
		author TEXT NOT NULL,
		read_time VARCHAR(50) NOT NULL,
		image TEXT NOT NULL,
		category VARCHAR(100) NOT NULL,
		tags JSONB NOT NULL DEFAULT '[]'
	);`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		post_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		author VARCHAR(50) NOT NULL,
		CONSTRAINT comments_post_id_fkey FOREIGN KEY (post_id) REFERENCES blog_posts (id),
		CONSTRAINT comments_user_id_fkey FOREIGN KEY (user_id) REFERENCES users (id)
	);`,
}

// Bootstrap creates the database schema if it does not exist yet.
func Bootstrap(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Log.Errorw("failed to apply schema statement", "error", err)
			return err
		}
	}
	return nil
}
