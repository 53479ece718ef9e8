package core

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/edvin/accounts/internal/model"
)

// ActivationInput is one activation attempt, parsed from the request by
// the handler. FromForm marks a POSTed form, which requires a valid nonce;
// the GET ?key= auto-path skips the nonce check.
type ActivationInput struct {
	Key      string
	Nonce    string
	FromForm bool
}

// ActivationService runs the account activation flow and records its
// Outcome in the request's ResultStore.
type ActivationService struct {
	users    UserStore
	sessions SessionStarter
	emails   EmailSender
	nonces   NonceVerifier
	links    *LinkBuilder
}

func NewActivationService(users UserStore, sessions SessionStarter, emails EmailSender, nonces NonceVerifier, links *LinkBuilder) *ActivationService {
	return &ActivationService{users: users, sessions: sessions, emails: emails, nonces: nonces, links: links}
}

// Activate validates the input, completes the signup, and records the
// Outcome. It returns the session token when auto-login was requested and
// succeeded, otherwise "". Every failure ends in an Outcome; nothing
// escapes as an error.
func (s *ActivationService) Activate(ctx context.Context, rs *ResultStore, in ActivationInput, settings *FlowSettings) string {
	if in.FromForm {
		if !s.nonces.Verify(in.Nonce, NonceActionActivation) {
			rs.SetOutcome(model.Outcome{
				Success:      false,
				ErrorCode:    model.ErrCodeNonceFailed,
				ErrorMessage: "Security check failed. Please refresh the page and try again.",
			})
			return ""
		}
		if in.Key == "" {
			rs.SetOutcome(model.Outcome{
				Success:      false,
				ErrorCode:    model.ErrCodeEmptyKey,
				ErrorMessage: "Please enter your activation key.",
			})
			return ""
		}
	}

	return s.process(ctx, rs, in.Key, settings)
}

func (s *ActivationService) process(ctx context.Context, rs *ResultStore, key string, settings *FlowSettings) string {
	// At most one activation attempt per request.
	if rs.Processed() {
		return ""
	}
	rs.MarkProcessed()

	logger := zerolog.Ctx(ctx)

	user, err := s.users.CompleteSignup(ctx, key)
	if err != nil {
		rs.SetOutcome(failureOutcome(logger, "complete signup", err, ""))
		return ""
	}

	var sessionToken string
	if settings.AutoLogin {
		sessionToken, err = s.sessions.Start(ctx, user.ID)
		if err != nil {
			logger.Error().Err(err).Str("user_id", user.ID).Msg("auto-login session failed")
			sessionToken = ""
		}
	}

	// Generate a reset link so the user can choose a password. Failure
	// here is non-fatal and unreported: the outcome and the welcome email
	// go out without a personalized link.
	var resetURL string
	if settings.PasswordResetPageID != "" {
		resetKey, err := s.users.IssuePasswordResetKey(ctx, user.ID)
		if err != nil {
			logger.Warn().Err(err).Str("user_id", user.ID).Msg("reset key generation failed during activation")
		} else {
			resetURL = s.links.ResetURL(resetKey, user.Login)
		}
	}

	rs.SetOutcome(model.Outcome{
		Success:  true,
		UserID:   user.ID,
		Username: user.Login,
		ResetURL: resetURL,
	})

	if settings.WelcomeEmailEnabled {
		if err := s.emails.SendWelcomeEmail(ctx, user, resetURL); err != nil {
			logger.Warn().Err(err).Str("user_id", user.ID).Msg("welcome email failed")
		}
	}

	return sessionToken
}

// failureOutcome turns an error into a failed Outcome. CodedError surfaces
// verbatim; anything else is an infrastructure fault logged and masked
// behind a generic message.
func failureOutcome(logger *zerolog.Logger, op string, err error, mode model.ResetMode) model.Outcome {
	var coded *CodedError
	if errors.As(err, &coded) {
		return model.Outcome{
			Success:      false,
			Mode:         mode,
			ErrorCode:    coded.Code,
			ErrorMessage: coded.Message,
		}
	}
	logger.Error().Err(err).Str("op", op).Msg("flow failed")
	return model.Outcome{
		Success:      false,
		Mode:         mode,
		ErrorCode:    "internal_error",
		ErrorMessage: "Something went wrong. Please try again later.",
	}
}
