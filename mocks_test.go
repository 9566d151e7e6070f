package todoapp_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"

	todoapp "github.com/milbmr/todoapp-backend"
)

// MockIdentity implements todoapp.Identity
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Username() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

// MockLogger implements todoapp.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// MockIdentityProvider implements todoapp.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (todoapp.Identity, error) {
	args := m.Called(ctx, identifier, password)
	if v := args.Get(0); v != nil {
		return v.(todoapp.Identity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (todoapp.Identity, error) {
	args := m.Called(ctx, identifier)
	if v := args.Get(0); v != nil {
		return v.(todoapp.Identity), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAuthenticator implements todoapp.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, identifier, password string) (*todoapp.TokenPair, error) {
	args := m.Called(ctx, identifier, password)
	if v := args.Get(0); v != nil {
		return v.(*todoapp.TokenPair), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticator) Refresh(ctx context.Context, identifier, presented string) (*todoapp.TokenPair, error) {
	args := m.Called(ctx, identifier, presented)
	if v := args.Get(0); v != nil {
		return v.(*todoapp.TokenPair), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticator) Revoke(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockUsers mocks the methods under test and embeds the interface for
// everything the generic repository brings along.
type MockUsers struct {
	mock.Mock
	todoapp.Users
}

func (m *MockUsers) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*todoapp.User, error) {
	args := m.Called(ctx, identifier)
	if v := args.Get(0); v != nil {
		return v.(*todoapp.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) RegisterTx(ctx context.Context, tx bun.IDB, user *todoapp.User) (*todoapp.User, error) {
	args := m.Called(ctx, tx, user)
	if v := args.Get(0); v != nil {
		return v.(*todoapp.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) TrackAttemptedLogin(ctx context.Context, user *todoapp.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsers) TrackSuccessfulLogin(ctx context.Context, user *todoapp.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsers) StoreRefreshToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, id, token, expiresAt)
	return args.Error(0)
}

func (m *MockUsers) RotateRefreshToken(ctx context.Context, id uuid.UUID, current, next string, expiresAt time.Time) (bool, error) {
	args := m.Called(ctx, id, current, next, expiresAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsers) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTodos implements todoapp.Todos
type MockTodos struct {
	mock.Mock
}

func (m *MockTodos) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*todoapp.TodoItem, error) {
	args := m.Called(ctx, owner)
	if v := args.Get(0); v != nil {
		return v.([]*todoapp.TodoItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTodos) Create(ctx context.Context, item *todoapp.TodoItem) (*todoapp.TodoItem, error) {
	args := m.Called(ctx, item)
	if v := args.Get(0); v != nil {
		return v.(*todoapp.TodoItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTodos) DeleteByIDForOwner(ctx context.Context, id int64, owner uuid.UUID) (*todoapp.TodoItem, error) {
	args := m.Called(ctx, id, owner)
	if v := args.Get(0); v != nil {
		return v.(*todoapp.TodoItem), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRepositoryManager implements todoapp.RepositoryManager over mock
// repositories. RunInTx invokes the callback directly so transactional
// handlers run against the mocks.
type MockRepositoryManager struct {
	MockedUsers *MockUsers
	MockedTodos *MockTodos
}

func NewMockRepositoryManager() *MockRepositoryManager {
	return &MockRepositoryManager{
		MockedUsers: &MockUsers{},
		MockedTodos: &MockTodos{},
	}
}

func (m *MockRepositoryManager) Validate() error { return nil }

func (m *MockRepositoryManager) MustValidate() {}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *MockRepositoryManager) Users() todoapp.Users { return m.MockedUsers }

func (m *MockRepositoryManager) Todos() todoapp.Todos { return m.MockedTodos }

// testConfig implements todoapp.Config with the defaults used across
// the suite.
type testConfig struct {
	signingKey string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func newTestConfig() *testConfig {
	return &testConfig{
		signingKey: "test-signing-key",
		accessTTL:  30 * time.Second,
		refreshTTL: 20 * time.Second,
	}
}

func (c *testConfig) GetSigningKey() string { return c.signingKey }
func (c *testConfig) GetContextKey() string { return "user" }
func (c *testConfig) GetIssuer() string     { return "test-issuer" }
func (c *testConfig) GetAudience() []string { return []string{"test-audience"} }

func (c *testConfig) GetAccessTokenTTL() time.Duration  { return c.accessTTL }
func (c *testConfig) GetRefreshTokenTTL() time.Duration { return c.refreshTTL }

func (c *testConfig) GetAuthScheme() string  { return "Bearer" }
func (c *testConfig) GetTokenLookup() string { return "header:Authorization" }

func (c *testConfig) GetRefreshCookieName() string     { return "refresh-token" }
func (c *testConfig) GetRefreshCookieSecure() bool     { return true }
func (c *testConfig) GetRefreshCookieSameSite() string { return "None" }

// routerContext aliases the interface so embedding it does not produce
// a field named Context that would collide with the Context() method.
type routerContext = router.Context

// MockContext mocks router.Context. The embedded interface covers the
// methods the suite never touches.
type MockContext struct {
	mock.Mock
	routerContext
	NextCalled bool
}

var _ router.Context = (*MockContext)(nil)

func (m *MockContext) Next() error {
	m.NextCalled = true
	return nil
}

func (m *MockContext) Context() context.Context {
	args := m.Called()
	c, ok := args.Get(0).(context.Context)
	if !ok {
		panic("arg needs to be context.Context")
	}
	return c
}

func (m *MockContext) SetContext(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockContext) Status(code int) router.Context {
	m.Called(code)
	return m
}

func (m *MockContext) SendString(s string) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockContext) JSON(code int, val any) error {
	args := m.Called(code, val)
	return args.Error(0)
}

func (m *MockContext) NoContent(code int) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockContext) Bind(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) Cookie(cookie *router.Cookie) {
	m.Called(cookie)
}

func (m *MockContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Query(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) GetString(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		m.Called(key, value[0])
		return nil
	}
	args := m.Called(key)
	return args.Get(0)
}
