package todoapp

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// Auther orchestrates login, refresh rotation, and revocation over a
// token service and the users repository.
type Auther struct {
	provider   IdentityProvider
	tokens     TokenService
	users      Users
	refreshTTL time.Duration
	logger     Logger
}

var _ Authenticator = (*Auther)(nil)

func NewAuthenticator(provider IdentityProvider, tokens TokenService, users Users, config Config) *Auther {
	return &Auther{
		provider:   provider,
		tokens:     tokens,
		users:      users,
		refreshTTL: config.GetRefreshTokenTTL(),
		logger:     defLogger{},
	}
}

func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Login verifies credentials and mints a fresh token pair. The new
// refresh token replaces whatever was stored, so at most one refresh
// token is live per user.
func (a *Auther) Login(ctx context.Context, identifier, password string) (*TokenPair, error) {
	identity, err := a.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(identity.ID())
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "identity has a malformed id")
	}

	pair, err := a.mintPair(identity)
	if err != nil {
		return nil, err
	}

	if err := a.users.StoreRefreshToken(ctx, id, pair.RefreshToken, pair.ExpiresAt); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to persist refresh token")
	}

	return pair, nil
}

// Refresh rotates the refresh token for the identified user. The swap
// is optimistic: it only lands if the stored token still equals
// presented, so concurrent refreshes redeeming the same token produce
// exactly one winner. A successful rotation pushes the stored expiry
// out as well.
func (a *Auther) Refresh(ctx context.Context, identifier, presented string) (*TokenPair, error) {
	user, err := a.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrRefreshTokenMismatch
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "refresh lookup failed")
	}

	if user.RefreshToken == "" || user.RefreshToken != presented {
		return nil, ErrRefreshTokenMismatch
	}
	if user.RefreshTokenExpiresAt == nil || time.Now().After(*user.RefreshTokenExpiresAt) {
		return nil, ErrRefreshTokenExpired
	}

	pair, err := a.mintPair(NewIdentityFromUser(user))
	if err != nil {
		return nil, err
	}

	rotated, err := a.users.RotateRefreshToken(ctx, user.ID, presented, pair.RefreshToken, pair.ExpiresAt)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to rotate refresh token")
	}
	if !rotated {
		// lost the swap to a concurrent refresh
		return nil, ErrRefreshTokenMismatch
	}

	return pair, nil
}

// Revoke drops the stored refresh token so it can never be redeemed
// again. Outstanding access tokens stay valid until they expire.
func (a *Auther) Revoke(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return ErrTokenMalformed
	}
	if err := a.users.ClearRefreshToken(ctx, id); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to revoke refresh token")
	}
	return nil
}

func (a *Auther) mintPair(identity Identity) (*TokenPair, error) {
	access, err := a.tokens.Generate(identity)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to sign access token")
	}
	refresh, err := a.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to mint refresh token")
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(a.refreshTTL),
		Identity:     identity,
	}, nil
}
