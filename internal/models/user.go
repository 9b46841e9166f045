package models

// UserDB represents a user row in the database
type UserDB struct {
	ID           int64  `json:"id" db:"id"`             // Primary key
	Email        string `json:"email" db:"email"`       // Unique email address
	Username     string `json:"username" db:"username"` // Unique username
	PasswordHash string `json:"-" db:"password_hash"`   // Bcrypt password hash, never serialized
	IsAdmin      bool   `json:"is_admin" db:"is_admin"` // Grants access to content-mutation routes
}
