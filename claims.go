package todoapp

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims exposes validated access-token claims without tying
// callers to a concrete JWT implementation.
type AuthClaims interface {
	Subject() string
	UserID() string
	Name() string
	Expires() time.Time
	IssuedTime() time.Time
}

// JWTClaims is the access-token payload: the registered claim set plus
// the user id and display name the frontend consumes.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID      string `json:"uid,omitempty"`
	UserName string `json:"name,omitempty"`
}

var _ AuthClaims = (*JWTClaims)(nil)

func (c *JWTClaims) Subject() string { return c.RegisteredClaims.Subject }

func (c *JWTClaims) UserID() string { return c.UID }

func (c *JWTClaims) Name() string { return c.UserName }

func (c *JWTClaims) Expires() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

func (c *JWTClaims) IssuedTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}
