package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/edvin/accounts/internal/model"
	"github.com/edvin/accounts/internal/platform"
)

const (
	activationKeyBytes = 16
	resetKeyBytes      = 20
	resetKeyLifetime   = 24 * time.Hour
)

// UserService owns users, pending signups, and password-reset keys.
// It implements UserStore.
type UserService struct {
	db DB
}

func NewUserService(db DB) *UserService {
	return &UserService{db: db}
}

// CreateSignup registers a pending signup and returns it with the raw
// activation key. Callers dispatch the activation email.
func (s *UserService) CreateSignup(ctx context.Context, login, email string) (*model.Signup, error) {
	signup := &model.Signup{
		ID:            platform.NewID(),
		Login:         login,
		Email:         email,
		ActivationKey: platform.NewKey(activationKeyBytes),
		CreatedAt:     time.Now(),
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO signups (id, login, email, activation_key, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		signup.ID, signup.Login, signup.Email, signup.ActivationKey, signup.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert signup: %w", err)
	}
	return signup, nil
}

// CompleteSignup consumes an activation key: it marks the signup activated
// and creates the user account. An unknown key or an already-consumed key
// is a *CodedError surfaced verbatim to the caller.
func (s *UserService) CompleteSignup(ctx context.Context, key string) (*model.User, error) {
	var signup model.Signup
	err := s.db.QueryRow(ctx,
		`SELECT id, login, email, activated FROM signups WHERE activation_key = $1`, key,
	).Scan(&signup.ID, &signup.Login, &signup.Email, &signup.Activated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &CodedError{Code: ErrCodeInvalidKey, Message: "Invalid activation key."}
	}
	if err != nil {
		return nil, fmt.Errorf("get signup by key: %w", err)
	}

	if signup.Activated {
		return nil, &CodedError{Code: ErrCodeAlreadyActive, Message: "This account has already been activated."}
	}

	now := time.Now()
	user := &model.User{
		ID:          platform.NewID(),
		Login:       signup.Login,
		Email:       signup.Email,
		DisplayName: signup.Login,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO users (id, login, email, display_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Login, user.Email, user.DisplayName, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user for signup %s: %w", signup.ID, err)
	}

	_, err = s.db.Exec(ctx,
		"UPDATE signups SET activated = true, activated_at = now() WHERE id = $1", signup.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("mark signup %s activated: %w", signup.ID, err)
	}

	return user, nil
}

func (s *UserService) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	return s.findBy(ctx, "login", login)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findBy(ctx, "email", email)
}

func (s *UserService) findBy(ctx context.Context, column, value string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(ctx,
		`SELECT id, login, email, display_name, first_name, last_name, created_at, updated_at
		 FROM users WHERE `+column+` = $1`, value,
	).Scan(&u.ID, &u.Login, &u.Email, &u.DisplayName, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by %s: %w", column, err)
	}
	return &u, nil
}

// IssuePasswordResetKey creates a single-use, time-limited reset key for
// the user and returns the raw key. Only the SHA-256 hash is stored.
func (s *UserService) IssuePasswordResetKey(ctx context.Context, userID string) (string, error) {
	rawKey := platform.NewKey(resetKeyBytes)

	_, err := s.db.Exec(ctx,
		`INSERT INTO password_resets (id, user_id, key_hash, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		platform.NewID(), userID, hashKey(rawKey), time.Now().Add(resetKeyLifetime),
	)
	if err != nil {
		return "", fmt.Errorf("insert password reset key: %w", err)
	}
	return rawKey, nil
}

// ValidateResetKey checks a key+login pair and consumes the key. Unknown,
// consumed, mismatched, or expired keys are *CodedError.
func (s *UserService) ValidateResetKey(ctx context.Context, key, login string) (*model.User, error) {
	var (
		resetID   string
		userID    string
		expiresAt time.Time
		consumed  *time.Time
	)
	err := s.db.QueryRow(ctx,
		`SELECT pr.id, pr.user_id, pr.expires_at, pr.consumed_at
		 FROM password_resets pr
		 JOIN users u ON pr.user_id = u.id
		 WHERE pr.key_hash = $1 AND u.login = $2`,
		hashKey(key), login,
	).Scan(&resetID, &userID, &expiresAt, &consumed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &CodedError{Code: ErrCodeInvalidKey, Message: "This password reset link is not valid. Please request a new one."}
	}
	if err != nil {
		return nil, fmt.Errorf("get password reset key: %w", err)
	}

	if consumed != nil || time.Now().After(expiresAt) {
		return nil, &CodedError{Code: ErrCodeExpiredKey, Message: "This password reset link has expired. Please request a new one."}
	}

	_, err = s.db.Exec(ctx,
		"UPDATE password_resets SET consumed_at = now() WHERE id = $1", resetID,
	)
	if err != nil {
		return nil, fmt.Errorf("consume password reset key %s: %w", resetID, err)
	}

	var u model.User
	err = s.db.QueryRow(ctx,
		`SELECT id, login, email, display_name, first_name, last_name, created_at, updated_at
		 FROM users WHERE id = $1`, userID,
	).Scan(&u.ID, &u.Login, &u.Email, &u.DisplayName, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return &u, nil
}

// ApplyNewPassword stores a bcrypt hash of the new password.
func (s *UserService) ApplyNewPassword(ctx context.Context, userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.db.Exec(ctx,
		"UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2",
		string(hash), userID,
	)
	if err != nil {
		return fmt.Errorf("update password for user %s: %w", userID, err)
	}
	return nil
}

func hashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
