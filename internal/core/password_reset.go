package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edvin/accounts/internal/model"
)

// ResetRequestInput is the "send me a reset link" form.
type ResetRequestInput struct {
	Login string
	Nonce string
}

// ResetPasswordInput is the "set a new password" form. Key and Login are
// carried as hidden fields from the emailed link.
type ResetPasswordInput struct {
	Key   string
	Login string
	Pass1 string
	Pass2 string
	Nonce string
}

// PasswordResetService runs the two password-reset sub-flows and records
// their Outcomes in the request's ResultStore.
type PasswordResetService struct {
	users  UserStore
	emails EmailSender
	nonces NonceVerifier
}

func NewPasswordResetService(users UserStore, emails EmailSender, nonces NonceVerifier) *PasswordResetService {
	return &PasswordResetService{users: users, emails: emails, nonces: nonces}
}

// RequestReset handles the reset-link request. The recorded Outcome is
// success whether or not the identifier matches an account, so callers can
// never distinguish "no such account" from "email sent".
func (s *PasswordResetService) RequestReset(ctx context.Context, rs *ResultStore, in ResetRequestInput) {
	if !s.nonces.Verify(in.Nonce, NonceActionResetRequest) {
		rs.SetOutcome(nonceFailure(model.ResetModeRequest))
		return
	}

	if in.Login == "" {
		rs.SetOutcome(model.Outcome{
			Success:      false,
			Mode:         model.ResetModeRequest,
			ErrorCode:    model.ErrCodeEmptyLogin,
			ErrorMessage: "Please enter your username or email address.",
		})
		return
	}

	logger := zerolog.Ctx(ctx)

	var (
		user *model.User
		err  error
	)
	if strings.Contains(in.Login, "@") {
		user, err = s.users.FindByEmail(ctx, in.Login)
	} else {
		user, err = s.users.FindByLogin(ctx, in.Login)
	}
	if err != nil {
		// Still report success below; a lookup fault must not reveal
		// anything about account existence.
		logger.Error().Err(err).Msg("reset request lookup failed")
		user = nil
	}

	if user != nil {
		key, err := s.users.IssuePasswordResetKey(ctx, user.ID)
		if err != nil {
			logger.Warn().Err(err).Str("user_id", user.ID).Msg("reset key generation failed")
		} else if err := s.emails.SendResetEmail(ctx, user, key); err != nil {
			logger.Warn().Err(err).Str("user_id", user.ID).Msg("reset email failed")
		}
	}

	rs.SetOutcome(model.Outcome{Success: true, Mode: model.ResetModeRequest})
}

// ResetPassword validates the key+login pair and applies the new password.
func (s *PasswordResetService) ResetPassword(ctx context.Context, rs *ResultStore, in ResetPasswordInput) {
	if !s.nonces.Verify(in.Nonce, NonceActionReset) {
		rs.SetOutcome(nonceFailure(model.ResetModeReset))
		return
	}

	if in.Pass1 == "" {
		rs.SetOutcome(model.Outcome{
			Success:      false,
			Mode:         model.ResetModeReset,
			ErrorCode:    model.ErrCodeEmptyPassword,
			ErrorMessage: "Please enter a new password.",
		})
		return
	}

	if in.Pass1 != in.Pass2 {
		rs.SetOutcome(model.Outcome{
			Success:      false,
			Mode:         model.ResetModeReset,
			ErrorCode:    model.ErrCodePasswordMismatch,
			ErrorMessage: "Passwords do not match. Please try again.",
		})
		return
	}

	logger := zerolog.Ctx(ctx)

	user, err := s.users.ValidateResetKey(ctx, in.Key, in.Login)
	if err != nil {
		rs.SetOutcome(failureOutcome(logger, "validate reset key", err, model.ResetModeReset))
		return
	}

	if err := s.users.ApplyNewPassword(ctx, user.ID, in.Pass1); err != nil {
		rs.SetOutcome(failureOutcome(logger, "apply new password", err, model.ResetModeReset))
		return
	}

	rs.SetOutcome(model.Outcome{Success: true, Mode: model.ResetModeReset})
}

func nonceFailure(mode model.ResetMode) model.Outcome {
	return model.Outcome{
		Success:      false,
		Mode:         mode,
		ErrorCode:    model.ErrCodeNonceFailed,
		ErrorMessage: "Security check failed. Please refresh the page and try again.",
	}
}
