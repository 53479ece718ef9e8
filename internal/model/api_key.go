package model

import "time"

// APIKey authenticates callers of the admin API. Only the SHA-256 hash of
// the raw key is stored; KeyPrefix identifies a key in listings.
type APIKey struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	KeyPrefix string     `json:"key_prefix" db:"key_prefix"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty" db:"revoked_at"`
}
