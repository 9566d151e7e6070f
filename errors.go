package todoapp

import (
	goerrors "github.com/goliatone/go-errors"
)

// Stable text codes clients can branch on regardless of message wording.
const (
	TextCodeTokenExpired    = "AUTH_TOKEN_EXPIRED"
	TextCodeTokenMalformed  = "AUTH_TOKEN_MALFORMED"
	TextCodeInvalidLogin    = "AUTH_INVALID_LOGIN"
	TextCodeTooManyAttempts = "AUTH_TOO_MANY_ATTEMPTS"
	TextCodeRefreshMismatch = "AUTH_REFRESH_MISMATCH"
	TextCodeRefreshExpired  = "AUTH_REFRESH_EXPIRED"
	TextCodeTodoNotFound    = "TODO_NOT_FOUND"
)

var (
	// ErrTokenExpired means the access token failed validation only
	// because its exp claim elapsed.
	ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
			WithTextCode(TextCodeTokenExpired).
			WithCode(goerrors.CodeUnauthorized)

	// ErrTokenMalformed covers every other way an access token can be
	// invalid: bad signature, wrong algorithm, garbage input.
	ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
			WithTextCode(TextCodeTokenMalformed).
			WithCode(goerrors.CodeUnauthorized)

	// ErrInvalidLogin is deliberately identical for an unknown user and
	// a wrong password.
	ErrInvalidLogin = goerrors.New("invalid login attempt", goerrors.CategoryAuth).
			WithTextCode(TextCodeInvalidLogin).
			WithCode(goerrors.CodeUnauthorized)

	ErrTooManyLoginAttempts = goerrors.New("too many failed login attempts", goerrors.CategoryAuth).
				WithTextCode(TextCodeTooManyAttempts).
				WithCode(goerrors.CodeUnauthorized)

	ErrRefreshTokenMismatch = goerrors.New("refresh token mismatch", goerrors.CategoryAuth).
				WithTextCode(TextCodeRefreshMismatch).
				WithCode(goerrors.CodeUnauthorized)

	ErrRefreshTokenExpired = goerrors.New("refresh token expired", goerrors.CategoryAuth).
				WithTextCode(TextCodeRefreshExpired).
				WithCode(goerrors.CodeUnauthorized)

	ErrTodoNotFound = goerrors.New("todo item not found", goerrors.CategoryNotFound).
			WithTextCode(TextCodeTodoNotFound).
			WithCode(goerrors.CodeNotFound)
)

// IsTokenExpiredError reports whether err represents an elapsed access
// token.
func IsTokenExpiredError(err error) bool {
	return goerrors.Is(err, ErrTokenExpired)
}

// IsMalformedError reports whether err represents an otherwise invalid
// access token.
func IsMalformedError(err error) bool {
	return goerrors.Is(err, ErrTokenMalformed)
}
