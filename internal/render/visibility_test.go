package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edvin/accounts/internal/core"
	"github.com/edvin/accounts/internal/model"
)

func freshContext() Context {
	return Context{
		Activation: core.NewResultStore(),
		Reset:      core.NewResultStore(),
	}
}

func TestShouldRender_NoOutcome(t *testing.T) {
	rc := freshContext()

	// Without an outcome, neither the error nor the success regions render.
	assert.False(t, ShouldRender(model.VariationErrors, rc))
	assert.False(t, ShouldRender(model.VariationSuccess, rc))
	assert.False(t, ShouldRender(model.VariationResetErrors, rc))
	assert.False(t, ShouldRender(model.VariationResetRequestSuccess, rc))
	assert.False(t, ShouldRender(model.VariationResetSuccess, rc))

	// Plain regions and the forms do.
	assert.True(t, ShouldRender("", rc))
	assert.True(t, ShouldRender(model.VariationActivationForm, rc))
	assert.True(t, ShouldRender(model.VariationResetForm, rc))
}

func TestShouldRender_ActivationError(t *testing.T) {
	rc := freshContext()
	rc.Activation.SetOutcome(model.Outcome{Success: false, ErrorCode: model.ErrCodeEmptyKey, ErrorMessage: "x"})

	assert.True(t, ShouldRender(model.VariationErrors, rc))
	assert.False(t, ShouldRender(model.VariationSuccess, rc))
	assert.True(t, ShouldRender(model.VariationActivationForm, rc))
}

func TestShouldRender_ActivationSuccessHidesFormAndErrors(t *testing.T) {
	rc := freshContext()
	rc.Activation.SetOutcome(model.Outcome{Success: true, Username: "alice"})

	assert.True(t, ShouldRender(model.VariationSuccess, rc))
	assert.False(t, ShouldRender(model.VariationErrors, rc))
	assert.False(t, ShouldRender(model.VariationActivationForm, rc))
}

func TestShouldRender_KeyInURLHidesForm(t *testing.T) {
	rc := freshContext()
	rc.HasKey = true

	assert.False(t, ShouldRender(model.VariationActivationForm, rc))
}

func TestShouldRender_ResetSuccessByMode(t *testing.T) {
	rc := freshContext()
	rc.Reset.SetOutcome(model.Outcome{Success: true, Mode: model.ResetModeRequest})

	assert.True(t, ShouldRender(model.VariationResetRequestSuccess, rc))
	assert.False(t, ShouldRender(model.VariationResetSuccess, rc))
	assert.False(t, ShouldRender(model.VariationResetForm, rc))

	rc = freshContext()
	rc.Reset.SetOutcome(model.Outcome{Success: true, Mode: model.ResetModeReset})

	assert.False(t, ShouldRender(model.VariationResetRequestSuccess, rc))
	assert.True(t, ShouldRender(model.VariationResetSuccess, rc))
}

func TestShouldRender_ResetOutcomeDoesNotLeakIntoActivation(t *testing.T) {
	rc := freshContext()
	rc.Reset.SetOutcome(model.Outcome{Success: true, Mode: model.ResetModeReset})

	assert.False(t, ShouldRender(model.VariationSuccess, rc))
	assert.False(t, ShouldRender(model.VariationErrors, rc))
}

func TestShouldRender_UnknownVariationAlwaysRenders(t *testing.T) {
	rc := freshContext()
	assert.True(t, ShouldRender("sidebar", rc))

	rc.Activation.SetOutcome(model.Outcome{Success: false, ErrorCode: "x", ErrorMessage: "x"})
	assert.True(t, ShouldRender("sidebar", rc))
}
