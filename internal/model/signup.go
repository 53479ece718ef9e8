package model

import "time"

// Signup is a pending account registration awaiting key activation.
type Signup struct {
	ID            string     `json:"id" db:"id"`
	Login         string     `json:"login" db:"login"`
	Email         string     `json:"email" db:"email"`
	ActivationKey string     `json:"-" db:"activation_key"`
	Activated     bool       `json:"activated" db:"activated"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty" db:"activated_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}
