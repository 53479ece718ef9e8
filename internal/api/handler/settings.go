package handler

import (
	"net/http"

	"github.com/edvin/accounts/internal/api/request"
	"github.com/edvin/accounts/internal/api/response"
	"github.com/edvin/accounts/internal/core"
)

// Settings handles the admin settings endpoints.
type Settings struct {
	svc *core.SettingsService
}

func NewSettings(svc *core.SettingsService) *Settings {
	return &Settings{svc: svc}
}

func (h *Settings) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetAll(r.Context())
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	values := map[string]string{}
	for _, st := range settings {
		values[st.Key] = st.Value
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"settings": values})
}

func (h *Settings) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateSettings
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	for key, value := range req.Settings {
		if err := h.svc.Set(r.Context(), key, value); err != nil {
			response.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	h.Get(w, r)
}
