package request

// UpdateSettings replaces the values of the named settings. Keys not listed
// are left untouched.
type UpdateSettings struct {
	Settings map[string]string `json:"settings" validate:"required,min=1"`
}
