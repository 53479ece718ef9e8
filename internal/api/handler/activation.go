package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/edvin/accounts/internal/core"
	"github.com/edvin/accounts/internal/render"
)

// Activation serves the public activation page: GET with an optional ?key=
// that activates immediately, and the POSTed key form.
type Activation struct {
	svc      *core.ActivationService
	settings *core.SettingsService
	pages    *core.PageService
	nonces   *core.NonceService
	renderer *render.Renderer
}

func NewActivation(svc *core.ActivationService, settings *core.SettingsService, pages *core.PageService, nonces *core.NonceService, renderer *render.Renderer) *Activation {
	return &Activation{svc: svc, settings: settings, pages: pages, nonces: nonces, renderer: renderer}
}

// Show renders the activation page. A key in the URL is processed before
// rendering, so the emailed link works in one click.
func (h *Activation) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flow, err := h.settings.Flow(ctx)
	if err != nil {
		internalError(w, r, err)
		return
	}

	rs := core.NewResultStore()
	key := r.URL.Query().Get("key")
	if key != "" {
		token := h.svc.Activate(ctx, rs, core.ActivationInput{Key: key}, flow)
		setSessionCookie(w, token)
	}

	h.render(w, r, rs, flow, key != "")
}

// Submit handles the key form.
func (h *Activation) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flow, err := h.settings.Flow(ctx)
	if err != nil {
		internalError(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	rs := core.NewResultStore()
	in := core.ActivationInput{
		Key:      strings.TrimSpace(r.PostFormValue("activation_key")),
		Nonce:    r.PostFormValue("_activation_nonce"),
		FromForm: true,
	}
	token := h.svc.Activate(ctx, rs, in, flow)
	setSessionCookie(w, token)

	h.render(w, r, rs, flow, false)
}

func (h *Activation) render(w http.ResponseWriter, r *http.Request, rs *core.ResultStore, flow *core.FlowSettings, hasKey bool) {
	ctx := r.Context()

	page, regions, err := resolvePage(ctx, h.pages, flow.ActivationPageID, "Activate Your Account", core.DefaultActivationRegions())
	if err != nil {
		internalError(w, r, err)
		return
	}

	rc := render.Context{
		Activation: rs,
		Reset:      core.NewResultStore(),
		HasKey:     hasKey,
		Nonces:     render.FormNonces{Activation: h.nonces.Issue(core.NonceActionActivation)},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderPage(w, page, regions, rc); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("render activation page")
	}
}

func setSessionCookie(w http.ResponseWriter, token string) {
	if token == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     core.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(core.SessionLifetime),
	})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}
