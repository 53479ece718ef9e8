package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/accounts/internal/platform"
)

const (
	// SessionCookieName carries the session token issued by Start.
	SessionCookieName = "accounts_session"

	// SessionLifetime bounds both the stored session row and the cookie
	// handed to the browser.
	SessionLifetime = 14 * 24 * time.Hour

	sessionTokenBytes = 32
)

// SessionService establishes logged-in sessions. It implements
// SessionStarter.
type SessionService struct {
	db DB
}

func NewSessionService(db DB) *SessionService {
	return &SessionService{db: db}
}

// Start creates a session for the user and returns the raw cookie token.
// Only the SHA-256 hash is stored.
func (s *SessionService) Start(ctx context.Context, userID string) (string, error) {
	token := platform.NewKey(sessionTokenBytes)

	_, err := s.db.Exec(ctx,
		`INSERT INTO sessions (id, user_id, token_hash, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		platform.NewID(), userID, hashKey(token), time.Now().Add(SessionLifetime),
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return token, nil
}

// Validate resolves a cookie token to the user it belongs to, or "" when
// the token is unknown or expired.
func (s *SessionService) Validate(ctx context.Context, token string) (string, error) {
	var userID string
	err := s.db.QueryRow(ctx,
		"SELECT user_id FROM sessions WHERE token_hash = $1 AND expires_at > now()",
		hashKey(token),
	).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	return userID, nil
}
