package model

import (
	"time"
)

// APIKey is a service-level bearer secret gating the whole API.
// Keys are global, not tied to a user.
type APIKey struct {
	ID        int64     `db:"id" json:"id"`
	Key       string    `db:"key" json:"key"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
