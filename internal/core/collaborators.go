package core

import (
	"context"

	"github.com/edvin/accounts/internal/model"
)

// UserStore is the user and credential collaborator consumed by the
// processors. Failures that must surface into an Outcome are *CodedError;
// anything else is an infrastructure fault.
type UserStore interface {
	CompleteSignup(ctx context.Context, key string) (*model.User, error)
	FindByLogin(ctx context.Context, login string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	IssuePasswordResetKey(ctx context.Context, userID string) (string, error)
	ValidateResetKey(ctx context.Context, key, login string) (*model.User, error)
	ApplyNewPassword(ctx context.Context, userID, password string) error
}

// SessionStarter establishes a logged-in session and returns the opaque
// cookie token.
type SessionStarter interface {
	Start(ctx context.Context, userID string) (string, error)
}

// EmailSender dispatches the flow emails. Callers treat failures as
// fire-and-forget: logged, never reflected in an Outcome.
type EmailSender interface {
	SendWelcomeEmail(ctx context.Context, user *model.User, resetURL string) error
	SendResetEmail(ctx context.Context, user *model.User, key string) error
}

// NonceVerifier checks anti-forgery tokens.
type NonceVerifier interface {
	Verify(token, action string) bool
}

// Mailer is the outbound mail transport.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string, headers map[string]string) error
}
