package models

// ProductDB represents a product row in the database
type ProductDB struct {
	ID            int64   `json:"id" db:"id"`                         // Primary key
	Name          string  `json:"name" db:"name"`                     // Product name
	Description   string  `json:"description" db:"description"`       // Product description
	Price         float64 `json:"price" db:"price"`                   // Non-negative price
	StockQuantity int     `json:"stock_quantity" db:"stock_quantity"` // Non-negative units in stock
	ImageURL      *string `json:"image_url" db:"image_url"`           // Optional image URL
	CategoryID    int64   `json:"category_id" db:"category_id"`       // References categories.id
}

// ProductWithCategory is a product row joined with its category name
type ProductWithCategory struct {
	ProductDB
	CategoryName string `json:"category_name" db:"category_name"`
}
