package todoapp

import (
	"context"
	"fmt"
	"time"
)

// Logger is the minimal logging surface this package needs. Callers
// inject their own implementation; the default prints to stdout.
type Logger interface {
	Info(format string, args ...any)
	Error(format string, args ...any)
	Debug(format string, args ...any)
}

type defLogger struct{}

func (d defLogger) Info(format string, args ...any)  { fmt.Printf("INF "+format+"\n", args...) }
func (d defLogger) Error(format string, args ...any) { fmt.Printf("ERR "+format+"\n", args...) }
func (d defLogger) Debug(format string, args ...any) { fmt.Printf("DBG "+format+"\n", args...) }

// Identity holds the attributes of an authenticated principal.
type Identity interface {
	ID() string
	Username() string
	Email() string
}

// Config is the configuration surface the auth components consume.
// The concrete implementation lives in the config package.
type Config interface {
	GetSigningKey() string
	GetContextKey() string
	GetIssuer() string
	GetAudience() []string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetAuthScheme() string
	GetTokenLookup() string
	GetRefreshCookieName() string
	GetRefreshCookieSecure() bool
	GetRefreshCookieSameSite() string
}

// IdentityProvider resolves and verifies identities against a backing
// store.
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
	FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error)
}

// TokenService mints and validates access tokens and mints the opaque
// refresh tokens that travel alongside them.
type TokenService interface {
	Generate(identity Identity) (string, error)
	GenerateRefreshToken() (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// TokenPair is the outcome of a successful login or refresh. ExpiresAt
// is the refresh token's expiry and drives the cookie lifetime.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Identity     Identity
}

// Authenticator orchestrates the credential lifecycle: login, refresh
// rotation, and revocation.
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (*TokenPair, error)
	Refresh(ctx context.Context, identifier, presented string) (*TokenPair, error)
	Revoke(ctx context.Context, userID string) error
}
