package todoapp_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	todoapp "github.com/milbmr/todoapp-backend"
)

func TestJWTClaims(t *testing.T) {
	t.Run("exposes the registered and custom claims", func(t *testing.T) {
		now := time.Now().Truncate(time.Second)
		claims := &todoapp.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-123",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Second)),
			},
			UID:      "user-123",
			UserName: "alice",
		}

		assert.Equal(t, "user-123", claims.Subject())
		assert.Equal(t, "user-123", claims.UserID())
		assert.Equal(t, "alice", claims.Name())
		assert.Equal(t, now, claims.IssuedTime())
		assert.Equal(t, now.Add(30*time.Second), claims.Expires())
	})

	t.Run("zero timestamps stay zero", func(t *testing.T) {
		claims := &todoapp.JWTClaims{}

		assert.True(t, claims.Expires().IsZero())
		assert.True(t, claims.IssuedTime().IsZero())
	})
}
