package models

import "time"

// CommentDB represents a blog comment row in the database
type CommentDB struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key
	Content   string    `json:"content" db:"content"`       // Comment body, required
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Server-assigned creation timestamp
	PostID    int64     `json:"post_id" db:"post_id"`       // References blog_posts.id
	UserID    int64     `json:"user_id" db:"user_id"`       // References users.id
	Author    string    `json:"author" db:"author"`         // Username snapshot taken at creation time
}
