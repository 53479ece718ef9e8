package handler

import (
	"net/http"
	"net/url"

	"github.com/edvin/accounts/internal/core"
)

// LegacyActivate permanently redirects the old activation entry point to
// the current page, preserving the key.
func LegacyActivate(w http.ResponseWriter, r *http.Request) {
	target := core.ActivatePath
	if key := r.URL.Query().Get("key"); key != "" {
		target += "?key=" + url.QueryEscape(key)
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}
