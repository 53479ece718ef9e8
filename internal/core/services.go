package core

type Services struct {
	Settings      *SettingsService
	Users         *UserService
	Sessions      *SessionService
	Pages         *PageService
	Email         *EmailService
	Nonces        *NonceService
	Links         *LinkBuilder
	Activation    *ActivationService
	PasswordReset *PasswordResetService
	APIKeys       *APIKeyService
}

func NewServices(db DB, mailer Mailer, baseURL, nonceSecret string) *Services {
	settings := NewSettingsService(db)
	users := NewUserService(db)
	sessions := NewSessionService(db)
	pages := NewPageService(db)
	links := NewLinkBuilder(baseURL)
	nonces := NewNonceService(nonceSecret)
	email := NewEmailService(settings, mailer, links)

	return &Services{
		Settings:      settings,
		Users:         users,
		Sessions:      sessions,
		Pages:         pages,
		Email:         email,
		Nonces:        nonces,
		Links:         links,
		Activation:    NewActivationService(users, sessions, email, nonces, links),
		PasswordReset: NewPasswordResetService(users, email, nonces),
		APIKeys:       NewAPIKeyService(db),
	}
}
