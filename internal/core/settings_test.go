package core

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func settingScan(key, value string) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*string)) = key
		*(dest[1].(*string)) = value
		return nil
	}
}

func TestSettingsService_Get_Unset(t *testing.T) {
	db := &mockDB{}
	svc := NewSettingsService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	value, err := svc.Get(ctx, SettingSiteName)
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestSettingsService_Get_Set(t *testing.T) {
	db := &mockDB{}
	svc := NewSettingsService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "Example"
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	value, err := svc.Get(ctx, SettingSiteName)
	require.NoError(t, err)
	assert.Equal(t, "Example", value)
}

func TestSettingsService_Set(t *testing.T) {
	db := &mockDB{}
	svc := NewSettingsService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), []any{SettingAutoLogin, "1"}).
		Return(pgconn.CommandTag{}, nil)

	require.NoError(t, svc.Set(ctx, SettingAutoLogin, "1"))
	db.AssertExpectations(t)
}

func TestSettingsService_Flow_Defaults(t *testing.T) {
	db := &mockDB{}
	svc := NewSettingsService(db)
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(newEmptyMockRows(), nil)

	flow, err := svc.Flow(ctx)
	require.NoError(t, err)
	assert.Empty(t, flow.ActivationPageID)
	assert.Empty(t, flow.PasswordResetPageID)
	assert.False(t, flow.AutoLogin)
	// Welcome email defaults on.
	assert.True(t, flow.WelcomeEmailEnabled)
}

func TestSettingsService_Flow_ParsesValues(t *testing.T) {
	db := &mockDB{}
	svc := NewSettingsService(db)
	ctx := context.Background()

	rows := newMockRows(
		settingScan(SettingActivationPageID, "page-a"),
		settingScan(SettingAutoLogin, "1"),
		settingScan(SettingPasswordResetPageID, "page-r"),
		settingScan(SettingWelcomeEmailEnabled, "0"),
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	flow, err := svc.Flow(ctx)
	require.NoError(t, err)
	assert.Equal(t, "page-a", flow.ActivationPageID)
	assert.Equal(t, "page-r", flow.PasswordResetPageID)
	assert.True(t, flow.AutoLogin)
	assert.False(t, flow.WelcomeEmailEnabled)
}
