package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/accounts/internal/model"
)

// Settings keys. Values are stored as strings; booleans as "0"/"1".
const (
	SettingActivationPageID       = "activation_page_id"
	SettingPasswordResetPageID    = "password_reset_page_id"
	SettingLoginPageID            = "login_page_id"
	SettingAutoLogin              = "auto_login"
	SettingWelcomeEmailEnabled    = "welcome_email_enabled"
	SettingFromName               = "from_name"
	SettingFromEmail              = "from_email"
	SettingSiteName               = "site_name"
	SettingNetworkName            = "network_name"
	SettingActivationEmailSubject = "activation_email_subject"
	SettingActivationEmailBody    = "activation_email_body"
	SettingWelcomeEmailSubject    = "welcome_email_subject"
	SettingWelcomeEmailBody       = "welcome_email_body"
	SettingResetEmailSubject      = "reset_email_subject"
	SettingResetEmailBody         = "reset_email_body"
)

// FlowSettings is the per-request snapshot of the settings the processors
// and the renderer consult.
type FlowSettings struct {
	ActivationPageID    string
	PasswordResetPageID string
	LoginPageID         string
	AutoLogin           bool
	WelcomeEmailEnabled bool
}

type SettingsService struct {
	db DB
}

func NewSettingsService(db DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the stored value, or "" when the key has never been set.
func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRow(ctx,
		"SELECT value FROM settings WHERE key = $1", key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *SettingsService) GetAll(ctx context.Context) ([]model.Setting, error) {
	rows, err := s.db.Query(ctx, "SELECT key, value FROM settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []model.Setting
	for rows.Next() {
		var st model.Setting
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings = append(settings, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return settings, nil
}

func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// Flow loads the snapshot consulted by the activation and password-reset
// flows. Missing flags take their defaults: auto-login off, welcome email on.
func (s *SettingsService) Flow(ctx context.Context) (*FlowSettings, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	fs := &FlowSettings{WelcomeEmailEnabled: true}
	for _, st := range all {
		switch st.Key {
		case SettingActivationPageID:
			fs.ActivationPageID = st.Value
		case SettingPasswordResetPageID:
			fs.PasswordResetPageID = st.Value
		case SettingLoginPageID:
			fs.LoginPageID = st.Value
		case SettingAutoLogin:
			fs.AutoLogin = truthy(st.Value)
		case SettingWelcomeEmailEnabled:
			fs.WelcomeEmailEnabled = truthy(st.Value)
		}
	}
	return fs, nil
}

func truthy(v string) bool {
	return v == "1" || v == "true"
}
