package model

import "time"

// UserInfo represents a registered user. Password always holds the
// argon2id hash once persisted, never plaintext, and is excluded from
// JSON so it can never leak into a client-facing response.
type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Admin     bool      `json:"admin"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserQuery scopes user repository lookups. Email is the unique,
// case-sensitive key as stored.
type UserQuery struct {
	Email string
}
