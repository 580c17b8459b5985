package models

import "time"

// TodoDB represents a todo record in the database.
// UpdatedAt stays nil until the record is modified for the first time.
type TodoDB struct {
	ID          int64      `json:"id" db:"id"`                   // Primary key
	Title       string     `json:"title" db:"title"`             // Title of the todo item
	Description string     `json:"description" db:"description"` // Detailed description
	IsCompleted bool       `json:"isCompleted" db:"is_completed"`
	UserID      int64      `json:"userId" db:"user_id"` // Owning user
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   *time.Time `json:"updatedAt" db:"updated_at"`
}
