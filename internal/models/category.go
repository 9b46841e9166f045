package models

// CategoryDB represents a product category row in the database
type CategoryDB struct {
	ID   int64  `json:"id" db:"id"`     // Primary key
	Name string `json:"name" db:"name"` // Unique category name
}
