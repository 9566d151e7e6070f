package todoapp

import (
	"context"
	"net/http"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/milbmr/todoapp-backend/middleware/jwtware"
)

// ProtectedRoute builds the Bearer-token middleware for routes that
// require a valid access token. Claims end up in router locals under
// the configured context key and in the request context.
func ProtectedRoute(cfg Config, tokens TokenService, errorHandler router.ErrorHandler) router.MiddlewareFunc {
	return jwtware.New(jwtware.Config{
		ErrorHandler:    errorHandler,
		AuthScheme:      cfg.GetAuthScheme(),
		ContextKey:      cfg.GetContextKey(),
		TokenLookup:     cfg.GetTokenLookup(),
		TokenValidator:  tokenValidatorAdapter{tokens: tokens},
		ContextEnricher: ContextEnricherAdapter,
	})
}

// tokenValidatorAdapter bridges the root TokenService to the interface
// pair the middleware declares locally.
type tokenValidatorAdapter struct {
	tokens TokenService
}

func (a tokenValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := a.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ContextEnricherAdapter copies validated claims into the standard
// request context so code below the HTTP layer can read them.
func ContextEnricherAdapter(c context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}
	return WithClaimsContext(c, authClaims)
}

// MakeAPIAuthErrorHandler maps middleware failures to the JSON error
// body API clients expect. Every failure is a 401; the detail goes to
// the log, not the response.
func MakeAPIAuthErrorHandler(logger Logger) router.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}
	return func(ctx router.Context, err error) error {
		logger.Debug("auth middleware rejected request: %v", err)
		return ctx.JSON(router.StatusUnauthorized, map[string]any{
			"error": "invalid or expired token",
		})
	}
}

// writeError maps an error to its JSON response. Anything without a
// recognized category is masked as a generic 500 and logged with its
// real text.
func writeError(ctx router.Context, logger Logger, err error) error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		switch richErr.Category {
		case goerrors.CategoryAuth, goerrors.CategoryAuthz:
			return ctx.JSON(router.StatusUnauthorized, map[string]any{"error": richErr.Message})
		case goerrors.CategoryNotFound:
			return ctx.JSON(http.StatusNotFound, map[string]any{"error": richErr.Message})
		case goerrors.CategoryValidation, goerrors.CategoryConflict:
			return ctx.JSON(router.StatusBadRequest, map[string]any{"error": richErr.Message})
		}
		logger.Error("unexpected error: %s %s", richErr.Message, print.MaybePrettyJSON(richErr.Metadata))
	} else {
		logger.Error("unexpected error: %v", err)
	}

	return ctx.JSON(http.StatusInternalServerError, map[string]any{
		"error": "unexpected error",
	})
}

func setRefreshCookie(ctx router.Context, cfg Config, token string, expiresAt time.Time) {
	ctx.Cookie(&router.Cookie{
		Name:     cfg.GetRefreshCookieName(),
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   cfg.GetRefreshCookieSecure(),
		SameSite: cfg.GetRefreshCookieSameSite(),
	})
}

func clearRefreshCookie(ctx router.Context, cfg Config) {
	ctx.Cookie(&router.Cookie{
		Name:     cfg.GetRefreshCookieName(),
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   cfg.GetRefreshCookieSecure(),
		SameSite: cfg.GetRefreshCookieSameSite(),
	})
}
