package render

import (
	"github.com/edvin/accounts/internal/core"
	"github.com/edvin/accounts/internal/model"
)

// Context carries the per-request state one page render needs: the result
// stores of both flows, the query parameters that select the reset sub-form,
// and the nonces to stamp into the forms.
type Context struct {
	Activation *core.ResultStore
	Reset      *core.ResultStore

	// ResetKey and ResetLogin come from the query string and switch the
	// password-reset region from the request form to the set-password form.
	ResetKey   string
	ResetLogin string

	// HasKey marks a ?key= activation request; the activation form is
	// pointless then because the key was processed automatically.
	HasKey bool

	Nonces FormNonces
}

// FormNonces are the tokens stamped into the hidden fields of each form.
type FormNonces struct {
	Activation   string
	Reset        string
	ResetRequest string
}

// ShouldRender decides whether a region with the given variation is visible
// for the current request. Regions without a variation, and regions with a
// variation this package does not know, always render.
func ShouldRender(variation string, rc Context) bool {
	switch variation {
	case model.VariationErrors:
		return rc.Activation.IsError()
	case model.VariationSuccess:
		return rc.Activation.IsSuccess()
	case model.VariationActivationForm:
		return !rc.HasKey && !rc.Activation.IsSuccess()
	case model.VariationResetErrors:
		return rc.Reset.IsError()
	case model.VariationResetRequestSuccess:
		return rc.Reset.IsSuccess() && rc.Reset.Mode() == model.ResetModeRequest
	case model.VariationResetSuccess:
		return rc.Reset.IsSuccess() && rc.Reset.Mode() == model.ResetModeReset
	case model.VariationResetForm:
		return !rc.Reset.IsSuccess()
	default:
		return true
	}
}
