package handler

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edvin/accounts/internal/core"
	"github.com/edvin/accounts/internal/render"
)

// PasswordReset serves the public password-reset page: the request-a-link
// form and, when the emailed key+login pair is present, the set-password
// form.
type PasswordReset struct {
	svc      *core.PasswordResetService
	settings *core.SettingsService
	pages    *core.PageService
	nonces   *core.NonceService
	renderer *render.Renderer
}

func NewPasswordReset(svc *core.PasswordResetService, settings *core.SettingsService, pages *core.PageService, nonces *core.NonceService, renderer *render.Renderer) *PasswordReset {
	return &PasswordReset{svc: svc, settings: settings, pages: pages, nonces: nonces, renderer: renderer}
}

func (h *PasswordReset) Show(w http.ResponseWriter, r *http.Request) {
	rs := core.NewResultStore()
	q := r.URL.Query()
	h.render(w, r, rs, q.Get("key"), q.Get("login"))
}

// Submit dispatches on the form shape: a set-password form carries the
// hidden rp_key field, the request form does not.
func (h *PasswordReset) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	rs := core.NewResultStore()

	if _, ok := r.PostForm["rp_key"]; ok {
		in := core.ResetPasswordInput{
			Key:   r.PostFormValue("rp_key"),
			Login: r.PostFormValue("rp_login"),
			Pass1: r.PostFormValue("pass1"),
			Pass2: r.PostFormValue("pass2"),
			Nonce: r.PostFormValue("_reset_nonce"),
		}
		h.svc.ResetPassword(ctx, rs, in)
		// Keep key and login so the form re-renders after a failure.
		h.render(w, r, rs, in.Key, in.Login)
		return
	}

	in := core.ResetRequestInput{
		Login: strings.TrimSpace(r.PostFormValue("user_login")),
		Nonce: r.PostFormValue("_reset_request_nonce"),
	}
	h.svc.RequestReset(ctx, rs, in)
	h.render(w, r, rs, "", "")
}

func (h *PasswordReset) render(w http.ResponseWriter, r *http.Request, rs *core.ResultStore, key, login string) {
	ctx := r.Context()

	flow, err := h.settings.Flow(ctx)
	if err != nil {
		internalError(w, r, err)
		return
	}

	page, regions, err := resolvePage(ctx, h.pages, flow.PasswordResetPageID, "Reset Your Password", core.DefaultResetRegions())
	if err != nil {
		internalError(w, r, err)
		return
	}

	rc := render.Context{
		Activation: core.NewResultStore(),
		Reset:      rs,
		ResetKey:   key,
		ResetLogin: login,
		Nonces: render.FormNonces{
			Reset:        h.nonces.Issue(core.NonceActionReset),
			ResetRequest: h.nonces.Issue(core.NonceActionResetRequest),
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderPage(w, page, regions, rc); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("render password reset page")
	}
}
