package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList is a []string stored as a JSONB array.
type StringList []string

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = StringList{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// PostDB represents a blog post row in the database
type PostDB struct {
	ID       int64      `json:"id" db:"id"`              // Primary key
	Title    string     `json:"title" db:"title"`        // Post title
	Excerpt  string     `json:"excerpt" db:"excerpt"`    // Short summary
	Content  string     `json:"content" db:"content"`    // Full post body
	Date     string     `json:"date" db:"date"`          // ISO date string, sorted lexicographically
	Author   string     `json:"author" db:"author"`      // Display name of the author
	ReadTime string     `json:"readTime" db:"read_time"` // Free-text read time, e.g. "5 min"
	Image    string     `json:"image" db:"image"`        // Cover image URL
	Category string     `json:"category" db:"category"`  // Free-text category label
	Tags     StringList `json:"tags" db:"tags"`          // Ordered tag list, stored as JSONB
}
