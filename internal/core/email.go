package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/edvin/accounts/internal/model"
)

// Default templates, used when no custom value is saved in settings.
const (
	defaultActivationSubject = "Activate your account at {site_name}"
	defaultActivationBody    = "Thank you for registering at {site_name}!\n\n" +
		"To activate your account, please click the link below:\n\n" +
		"{activation_link}\n\n" +
		"If you did not create this account, you can safely ignore this email.\n\n" +
		"{site_name}"

	defaultWelcomeSubject = "Welcome to {site_name} - your account is active"
	defaultWelcomeBody    = "Hi {display_name},\n\n" +
		"Your account at {site_name} has been successfully activated.\n\n" +
		"Your username is: {username}\n\n" +
		"Set your password: {password_reset_link}\n\n" +
		"You can log in at: {login_url}\n\n" +
		"{site_name}"

	defaultResetSubject = "Reset your password for {site_name}"
	defaultResetBody    = "Hi {username},\n\n" +
		"Someone requested a password reset for your account at {site_name}.\n\n" +
		"To set a new password, click the link below:\n\n" +
		"{reset_link}\n\n" +
		"If you did not request this, you can safely ignore this email. Your password will not change.\n\n" +
		"{site_name}"
)

// EmailService builds and dispatches the activation, welcome, and
// password-reset emails. Subjects and bodies come from settings with
// built-in defaults; {token} placeholders are replaced literally.
type EmailService struct {
	settings *SettingsService
	mailer   Mailer
	links    *LinkBuilder
}

func NewEmailService(settings *SettingsService, mailer Mailer, links *LinkBuilder) *EmailService {
	return &EmailService{settings: settings, mailer: mailer, links: links}
}

// SendActivationEmail mails the activation link for a pending signup.
func (s *EmailService) SendActivationEmail(ctx context.Context, signup *model.Signup) error {
	placeholders, err := s.basePlaceholders(ctx, map[string]string{
		"{activation_link}": s.links.ActivationURL(signup.ActivationKey),
		"{username}":        signup.Login,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, signup.Email,
		SettingActivationEmailSubject, defaultActivationSubject,
		SettingActivationEmailBody, defaultActivationBody,
		placeholders,
	)
}

// SendWelcomeEmail mails the post-activation welcome message. No password
// is ever included; the reset link lets the user choose one. An empty
// resetURL falls back to the plain reset page.
func (s *EmailService) SendWelcomeEmail(ctx context.Context, user *model.User, resetURL string) error {
	if resetURL == "" {
		resetURL = s.links.ResetPageURL()
	}
	displayName := user.DisplayName
	if displayName == "" {
		displayName = user.Login
	}
	placeholders, err := s.basePlaceholders(ctx, map[string]string{
		"{username}":            user.Login,
		"{first_name}":          user.FirstName,
		"{last_name}":           user.LastName,
		"{display_name}":        displayName,
		"{login_url}":           s.links.LoginURL(),
		"{password_reset_link}": resetURL,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, user.Email,
		SettingWelcomeEmailSubject, defaultWelcomeSubject,
		SettingWelcomeEmailBody, defaultWelcomeBody,
		placeholders,
	)
}

// SendResetEmail mails a password-reset link for the given raw key.
func (s *EmailService) SendResetEmail(ctx context.Context, user *model.User, key string) error {
	placeholders, err := s.basePlaceholders(ctx, map[string]string{
		"{username}":   user.Login,
		"{reset_link}": s.links.ResetURL(key, user.Login),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, user.Email,
		SettingResetEmailSubject, defaultResetSubject,
		SettingResetEmailBody, defaultResetBody,
		placeholders,
	)
}

func (s *EmailService) send(ctx context.Context, to, subjectKey, subjectDefault, bodyKey, bodyDefault string, placeholders map[string]string) error {
	subject, err := s.template(ctx, subjectKey, subjectDefault)
	if err != nil {
		return err
	}
	body, err := s.template(ctx, bodyKey, bodyDefault)
	if err != nil {
		return err
	}

	headers, err := s.buildHeaders(ctx)
	if err != nil {
		return err
	}

	err = s.mailer.Send(ctx,
		to,
		ReplacePlaceholders(subject, placeholders),
		ReplacePlaceholders(body, placeholders),
		headers,
	)
	if err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (s *EmailService) template(ctx context.Context, key, fallback string) (string, error) {
	value, err := s.settings.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if value == "" {
		return fallback, nil
	}
	return value, nil
}

func (s *EmailService) basePlaceholders(ctx context.Context, extra map[string]string) (map[string]string, error) {
	siteName, err := s.settings.Get(ctx, SettingSiteName)
	if err != nil {
		return nil, err
	}
	networkName, err := s.settings.Get(ctx, SettingNetworkName)
	if err != nil {
		return nil, err
	}
	if networkName == "" {
		networkName = siteName
	}

	placeholders := map[string]string{
		"{site_name}":    siteName,
		"{site_url}":     s.links.SiteURL(),
		"{network_name}": networkName,
	}
	for k, v := range extra {
		placeholders[k] = v
	}
	return placeholders, nil
}

func (s *EmailService) buildHeaders(ctx context.Context) (map[string]string, error) {
	fromName, err := s.settings.Get(ctx, SettingFromName)
	if err != nil {
		return nil, err
	}
	fromEmail, err := s.settings.Get(ctx, SettingFromEmail)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Content-Type": "text/plain; charset=UTF-8",
	}
	if fromEmail != "" {
		headers["From"] = fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}
	return headers, nil
}

// ReplacePlaceholders substitutes every {token} key literally. Tokens are
// distinct literals; there is no escaping or recursive substitution.
func ReplacePlaceholders(text string, placeholders map[string]string) string {
	pairs := make([]string, 0, len(placeholders)*2)
	for k, v := range placeholders {
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
