package model

import (
	"encoding/json"
	"time"
)

type Backup struct {
	ID       int64  `db:"id" json:"id"`
	AuthorID string `db:"author_id" json:"authorId"`
	// Opaque JSON payload supplied by the client. Stored and returned as-is.
	Data      json.RawMessage `db:"data" json:"data"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}
