package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/accounts/internal/core"
	"github.com/edvin/accounts/internal/model"
	"github.com/edvin/accounts/internal/render"
)

type activationFixture struct {
	users    *mockUserStore
	sessions *mockSessionStarter
	emails   *mockEmailSender
	nonces   *core.NonceService
	handler  *Activation
}

// newActivationFixture wires the handler against a mock DB holding the given
// settings. No activation page is configured, so the built-in layout renders.
func newActivationFixture(settings map[string]string) *activationFixture {
	db := &mockDB{}
	db.On("Query", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(settingRows(settings), nil)

	users := &mockUserStore{}
	sessions := &mockSessionStarter{}
	emails := &mockEmailSender{}
	nonces := core.NewNonceService("test-secret")
	links := core.NewLinkBuilder("https://example.com")
	svc := core.NewActivationService(users, sessions, emails, nonces, links)

	return &activationFixture{
		users:    users,
		sessions: sessions,
		emails:   emails,
		nonces:   nonces,
		handler:  NewActivation(svc, core.NewSettingsService(db), core.NewPageService(db), nonces, render.NewRenderer()),
	}
}

func TestActivationShow_RendersForm(t *testing.T) {
	f := newActivationFixture(nil)
	rec := httptest.NewRecorder()

	f.handler.Show(rec, httptest.NewRequest(http.MethodGet, "/activate", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, `name="activation_key"`)
	assert.Contains(t, body, `name="_activation_nonce"`)
	assert.NotContains(t, body, "activation-success")
	assert.NotContains(t, body, "activation-errors")
}

func TestActivationShow_KeyInURLActivates(t *testing.T) {
	f := newActivationFixture(nil)
	rec := httptest.NewRecorder()

	user := &model.User{ID: "user-1", Login: "alice", Email: "alice@example.com"}
	f.users.On("CompleteSignup", mock.Anything, "goodkey").Return(user, nil)
	f.emails.On("SendWelcomeEmail", mock.Anything, user, "").Return(nil)

	f.handler.Show(rec, httptest.NewRequest(http.MethodGet, "/activate?key=goodkey", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Your account has been successfully activated.")
	assert.Contains(t, body, "Your username is: alice")
	// The key was consumed automatically, so no form.
	assert.NotContains(t, body, `name="activation_key"`)
	f.users.AssertExpectations(t)
	f.emails.AssertExpectations(t)
}

func TestActivationShow_InvalidKeyShowsError(t *testing.T) {
	f := newActivationFixture(nil)
	rec := httptest.NewRecorder()

	f.users.On("CompleteSignup", mock.Anything, "badkey").
		Return(nil, &core.CodedError{Code: core.ErrCodeInvalidKey, Message: "Invalid activation key."})

	f.handler.Show(rec, httptest.NewRequest(http.MethodGet, "/activate?key=badkey", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Invalid activation key.")
	assert.NotContains(t, body, "Your account has been successfully activated.")
}

func TestActivationSubmit_BadNonce(t *testing.T) {
	f := newActivationFixture(nil)
	rec := httptest.NewRecorder()

	form := url.Values{"activation_key": {"goodkey"}, "_activation_nonce": {"bogus"}}
	f.handler.Submit(rec, newFormRequest("/activate", form))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Security check failed. Please refresh the page and try again.")
	f.users.AssertNotCalled(t, "CompleteSignup")
}

func TestActivationSubmit_EmptyKey(t *testing.T) {
	f := newActivationFixture(nil)
	rec := httptest.NewRecorder()

	form := url.Values{
		"activation_key":    {"   "},
		"_activation_nonce": {f.nonces.Issue(core.NonceActionActivation)},
	}
	f.handler.Submit(rec, newFormRequest("/activate", form))

	assert.Contains(t, rec.Body.String(), "Please enter your activation key.")
}

func TestActivationSubmit_AutoLoginSetsCookie(t *testing.T) {
	f := newActivationFixture(map[string]string{"auto_login": "1"})
	rec := httptest.NewRecorder()

	user := &model.User{ID: "user-1", Login: "alice", Email: "alice@example.com"}
	f.users.On("CompleteSignup", mock.Anything, "goodkey").Return(user, nil)
	f.sessions.On("Start", mock.Anything, "user-1").Return("session-token", nil)
	f.emails.On("SendWelcomeEmail", mock.Anything, user, "").Return(nil)

	form := url.Values{
		"activation_key":    {"goodkey"},
		"_activation_nonce": {f.nonces.Issue(core.NonceActionActivation)},
	}
	f.handler.Submit(rec, newFormRequest("/activate", form))

	require.Equal(t, http.StatusOK, rec.Code)
	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == core.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "session-token", sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestActivationShow_SettingsErrorIs500(t *testing.T) {
	db := &mockDB{}
	db.On("Query", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil, errors.New("db down"))

	nonces := core.NewNonceService("test-secret")
	svc := core.NewActivationService(&mockUserStore{}, &mockSessionStarter{}, &mockEmailSender{}, nonces, core.NewLinkBuilder("https://example.com"))
	h := NewActivation(svc, core.NewSettingsService(db), core.NewPageService(db), nonces, render.NewRenderer())

	rec := httptest.NewRecorder()
	h.Show(rec, httptest.NewRequest(http.MethodGet, "/activate", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
