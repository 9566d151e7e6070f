package todoapp

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUserIdentifier(t *testing.T) {
	t.Run("uuid tries id first, then username", func(t *testing.T) {
		id := uuid.New().String()

		options := resolveUserIdentifier(id)

		require.Len(t, options, 2)
		assert.Equal(t, "id", options[0].column)
		assert.Equal(t, id, options[0].value)
		assert.Equal(t, "username", options[1].column)
	})

	t.Run("email tries email first, then username", func(t *testing.T) {
		options := resolveUserIdentifier("alice@example.com")

		require.Len(t, options, 2)
		assert.Equal(t, "email", options[0].column)
		assert.Equal(t, "username", options[1].column)
	})

	t.Run("plain string only matches username", func(t *testing.T) {
		options := resolveUserIdentifier("alice")

		require.Len(t, options, 1)
		assert.Equal(t, "username", options[0].column)
		assert.Equal(t, "alice", options[0].value)
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		options := resolveUserIdentifier("  alice  ")

		require.Len(t, options, 1)
		assert.Equal(t, "alice", options[0].value)
	})

	t.Run("empty identifier yields nothing", func(t *testing.T) {
		assert.Empty(t, resolveUserIdentifier("   "))
	})
}

func TestGetUsername(t *testing.T) {
	t.Run("explicit username wins", func(t *testing.T) {
		username := getUsername(RegisterUserMessage{Username: "alice", Email: "someone@example.com"})
		assert.Equal(t, "alice", username)
	})

	t.Run("falls back to the email local part", func(t *testing.T) {
		username := getUsername(RegisterUserMessage{Email: "bob@example.com"})
		assert.Equal(t, "bob", username)
	})
}

func TestNormalizePhoneNumber(t *testing.T) {
	t.Run("empty passes through", func(t *testing.T) {
		phone, err := normalizePhoneNumber("")
		require.NoError(t, err)
		assert.Empty(t, phone)
	})

	t.Run("valid number comes back in E.164", func(t *testing.T) {
		phone, err := normalizePhoneNumber("+1 650 253 0000")
		require.NoError(t, err)
		assert.Equal(t, "+16502530000", phone)
	})

	t.Run("number without a country code fails", func(t *testing.T) {
		_, err := normalizePhoneNumber("650 253 0000")
		assert.Error(t, err)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))
	assert.True(t, isUniqueViolation(errors.New("duplicate key value violates unique constraint")))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}

func TestPrepareUserDefaults(t *testing.T) {
	t.Run("assigns an id when missing", func(t *testing.T) {
		user := &User{}
		prepareUserDefaults(user)
		assert.NotEqual(t, uuid.Nil, user.ID)
	})

	t.Run("keeps an existing id", func(t *testing.T) {
		id := uuid.New()
		user := &User{ID: id}
		prepareUserDefaults(user)
		assert.Equal(t, id, user.ID)
	})
}
