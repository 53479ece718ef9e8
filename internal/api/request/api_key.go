package request

// CreateAPIKey is the request body for creating a new API key.
type CreateAPIKey struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
