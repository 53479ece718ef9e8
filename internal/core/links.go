package core

import "net/url"

// Paths of the public pages. The legacy activation entry point redirects
// to ActivatePath with the key preserved.
const (
	ActivatePath      = "/activate"
	PasswordResetPath = "/password-reset"
	LoginPath         = "/login"
	LegacyActivate    = "/wp-activate.php"
)

// LinkBuilder builds the absolute URLs placed in emails and outcomes.
type LinkBuilder struct {
	baseURL string
}

func NewLinkBuilder(baseURL string) *LinkBuilder {
	return &LinkBuilder{baseURL: baseURL}
}

func (b *LinkBuilder) ActivationURL(key string) string {
	return b.baseURL + ActivatePath + "?key=" + url.QueryEscape(key)
}

// ResetURL points at the set-new-password form for one user. With an empty
// key it degrades to the plain reset page (the request-a-link form).
func (b *LinkBuilder) ResetURL(key, login string) string {
	if key == "" {
		return b.ResetPageURL()
	}
	return b.baseURL + PasswordResetPath + "?key=" + url.QueryEscape(key) + "&login=" + url.QueryEscape(login)
}

func (b *LinkBuilder) ResetPageURL() string {
	return b.baseURL + PasswordResetPath
}

func (b *LinkBuilder) LoginURL() string {
	return b.baseURL + LoginPath
}

func (b *LinkBuilder) SiteURL() string {
	return b.baseURL
}
