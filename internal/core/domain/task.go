package domain

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")

// Task is the core aggregate. UserID is set once at creation from the
// authenticated identity and never transfers; CreatedAt is immutable.
// Status is an opaque client-chosen string, round-tripped as given.
type Task struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UserID      string    `json:"user_id" bson:"user_id"`
}
