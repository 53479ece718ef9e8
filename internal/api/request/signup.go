package request

// CreateSignup registers a pending account that must be activated by key.
type CreateSignup struct {
	Login string `json:"login" validate:"required,login"`
	Email string `json:"email" validate:"required,email"`
}
