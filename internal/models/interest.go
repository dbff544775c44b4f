package models

import (
	"time"

	"github.com/google/uuid"
)

// Interest is owned by exactly one user. Hangouts may reference an interest
// but never own it; deleting the interest nulls the reference.
type Interest struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
