package render

import (
	"github.com/edvin/accounts/internal/core"
	"github.com/edvin/accounts/internal/model"
)

// BindingResolver maps binding names on page regions to values from the
// current request's outcomes.
type BindingResolver struct {
	activation *core.ResultStore
	reset      *core.ResultStore
}

func NewBindingResolver(activation, reset *core.ResultStore) *BindingResolver {
	return &BindingResolver{activation: activation, reset: reset}
}

// Resolve returns the value for a binding name. The second return is false
// when the name is unknown or its source outcome is absent; the region then
// renders with an empty value.
func (r *BindingResolver) Resolve(name string) (string, bool) {
	switch name {
	case model.BindingErrorMessage:
		if r.activation.IsError() {
			return r.activation.ErrorMessage(), true
		}
	case model.BindingUsername:
		if u := r.activation.Username(); u != "" {
			return u, true
		}
	case model.BindingUsernameMessage:
		if u := r.activation.Username(); u != "" {
			return "Your username is: " + u, true
		}
	case model.BindingResetURL:
		if u := r.activation.ResetURL(); u != "" {
			return u, true
		}
	case model.BindingResetErrorMessage:
		if r.reset.IsError() {
			return r.reset.ErrorMessage(), true
		}
	}
	return "", false
}
