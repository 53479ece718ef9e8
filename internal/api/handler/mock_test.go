package handler

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/edvin/accounts/internal/model"
)

// mockDB implements core.DB for testing.
type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// mockRows implements pgx.Rows, one scan function per row.
type mockRows struct {
	callIndex int
	scanFuncs []func(dest ...any) error
}

func newMockRows(scanFuncs ...func(dest ...any) error) *mockRows {
	return &mockRows{scanFuncs: scanFuncs}
}

func (m *mockRows) Next() bool {
	return m.callIndex < len(m.scanFuncs)
}

func (m *mockRows) Scan(dest ...any) error {
	if m.callIndex < len(m.scanFuncs) {
		fn := m.scanFuncs[m.callIndex]
		m.callIndex++
		return fn(dest...)
	}
	return nil
}

func (m *mockRows) Err() error                                   { return nil }
func (m *mockRows) Close()                                       {}
func (m *mockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (m *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (m *mockRows) RawValues() [][]byte                          { return nil }
func (m *mockRows) Values() ([]any, error)                       { return nil, nil }
func (m *mockRows) Conn() *pgx.Conn                              { return nil }

// settingRows builds rows for the settings table in key order.
func settingRows(values map[string]string) *mockRows {
	var scans []func(dest ...any) error
	for key, value := range values {
		key, value := key, value
		scans = append(scans, func(dest ...any) error {
			*(dest[0].(*string)) = key
			*(dest[1].(*string)) = value
			return nil
		})
	}
	return newMockRows(scans...)
}

// ---------- Flow collaborators ----------

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) CompleteSignup(ctx context.Context, key string) (*model.User, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserStore) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserStore) IssuePasswordResetKey(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockUserStore) ValidateResetKey(ctx context.Context, key, login string) (*model.User, error) {
	args := m.Called(ctx, key, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserStore) ApplyNewPassword(ctx context.Context, userID, password string) error {
	args := m.Called(ctx, userID, password)
	return args.Error(0)
}

type mockSessionStarter struct {
	mock.Mock
}

func (m *mockSessionStarter) Start(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type mockEmailSender struct {
	mock.Mock
}

func (m *mockEmailSender) SendWelcomeEmail(ctx context.Context, user *model.User, resetURL string) error {
	args := m.Called(ctx, user, resetURL)
	return args.Error(0)
}

func (m *mockEmailSender) SendResetEmail(ctx context.Context, user *model.User, key string) error {
	args := m.Called(ctx, user, key)
	return args.Error(0)
}
