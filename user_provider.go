package todoapp

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// Login throttling: after MaxLoginAttempts consecutive failures the
// account stays locked until CoolDownPeriod has elapsed since the last
// attempt.
var (
	MaxLoginAttempts = 5
	CoolDownPeriod   = "15m"
)

// UserProvider verifies credentials against the users repository.
type UserProvider struct {
	repo   Users
	logger Logger
}

var _ IdentityProvider = (*UserProvider)(nil)

func NewUserProvider(repo Users, logger Logger) *UserProvider {
	if logger == nil {
		logger = defLogger{}
	}
	return &UserProvider{repo: repo, logger: logger}
}

// VerifyIdentity checks identifier and password. The returned error is
// identical whether the user does not exist or the password is wrong,
// so callers cannot probe for registered accounts.
func (p *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := p.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrInvalidLogin
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "identity lookup failed")
	}

	if user.LoginAttempts >= MaxLoginAttempts && user.LoginAttemptAt != nil {
		outside, terr := IsOutsideThresholdPeriod(*user.LoginAttemptAt, CoolDownPeriod)
		if terr != nil {
			return nil, goerrors.Wrap(terr, goerrors.CategoryInternal, "bad cool-down period")
		}
		if !outside {
			return nil, ErrTooManyLoginAttempts
		}
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if terr := p.repo.TrackAttemptedLogin(ctx, user); terr != nil {
			p.logger.Error("unable to track login attempt: %v", terr)
		}
		return nil, ErrInvalidLogin
	}

	if err := p.repo.TrackSuccessfulLogin(ctx, user); err != nil {
		p.logger.Error("unable to track login: %v", err)
	}

	return NewIdentityFromUser(user), nil
}

// FindIdentityByIdentifier resolves an identity without checking a
// password.
func (p *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := p.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}
	return NewIdentityFromUser(user), nil
}

// IsOutsideThresholdPeriod reports whether ts is older than the given
// duration string, e.g. "15m".
func IsOutsideThresholdPeriod(ts time.Time, period string) (bool, error) {
	d, err := time.ParseDuration(period)
	if err != nil {
		return false, err
	}
	return time.Since(ts) > d, nil
}
