package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/accounts/internal/api/request"
	"github.com/edvin/accounts/internal/api/response"
	"github.com/edvin/accounts/internal/core"
)

// Page exposes the flow pages and their regions over the admin API.
type Page struct {
	svc *core.PageService
}

func NewPage(svc *core.PageService) *Page {
	return &Page{svc: svc}
}

func (h *Page) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if page == nil {
		response.WriteError(w, http.StatusNotFound, "page not found")
		return
	}

	regions, err := h.svc.Regions(r.Context(), page.ID)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"page":    page,
		"regions": regions,
	})
}
