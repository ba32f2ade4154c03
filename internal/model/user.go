package model

import (
	"time"
)

const RoleUser = "User"

type User struct {
	ID       string `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"-"` // bcrypt hash, never serialized
	IsOnline bool   `db:"is_online" json:"isOnline"`
	Role     string `db:"role" json:"role"`
	// Last issued refresh token. Only records that a session exists; it is not
	// compared during refresh verification.
	RefreshToken *string   `db:"refresh_token" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// UserPatch carries a partial update. Nil fields are left unchanged.
type UserPatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
