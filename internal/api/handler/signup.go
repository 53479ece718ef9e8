package handler

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edvin/accounts/internal/api/request"
	"github.com/edvin/accounts/internal/api/response"
	"github.com/edvin/accounts/internal/core"
)

// Signup registers pending accounts via the admin API.
type Signup struct {
	users  *core.UserService
	emails *core.EmailService
}

func NewSignup(users *core.UserService, emails *core.EmailService) *Signup {
	return &Signup{users: users, emails: emails}
}

// Create stores a pending signup and dispatches the activation email. The
// activation key is included in the response so operators can hand it out
// when the email cannot be delivered.
func (h *Signup) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSignup
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	signup, err := h.users.CreateSignup(r.Context(), strings.ToLower(req.Login), strings.ToLower(req.Email))
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.emails.SendActivationEmail(r.Context(), signup); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("signup_id", signup.ID).Msg("activation email failed")
	}

	response.WriteJSON(w, http.StatusCreated, signup)
}
