package todoapp

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RouteRegistrar is the slice of the router surface controllers need to
// mount their routes.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// AccountController serves registration, login, refresh, and revoke.
type AccountController struct {
	Debug    bool
	Logger   Logger
	Repo     RepositoryManager
	Auther   Authenticator
	Settings Config
}

type AccountControllerOption func(*AccountController)

func WithAccountLogger(logger Logger) AccountControllerOption {
	return func(a *AccountController) {
		if logger != nil {
			a.Logger = logger
		}
	}
}

func WithAccountDebug(debug bool) AccountControllerOption {
	return func(a *AccountController) {
		a.Debug = debug
	}
}

func NewAccountController(auther Authenticator, repo RepositoryManager, cfg Config, opts ...AccountControllerOption) *AccountController {
	ctrl := &AccountController{
		Logger:   defLogger{},
		Repo:     repo,
		Auther:   auther,
		Settings: cfg,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ctrl)
		}
	}
	return ctrl
}

func (a *AccountController) RegisterRoutes(r RouteRegistrar, protected router.MiddlewareFunc) {
	r.Post("/account/register", a.Register).SetName("account.register")
	r.Post("/account/login", a.Login).SetName("account.login")
	r.Post("/account/refresh", a.RefreshToken).SetName("account.refresh")
	r.Post("/account/revoke", a.Revoke, protected).SetName("account.revoke")
}

// Register creates a new account and answers 201 with a plain-text
// confirmation.
func (a *AccountController) Register(ctx router.Context) error {
	payload := RegistrationCreatePayload{}
	if err := ctx.Bind(&payload); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{"error": "invalid request body"})
	}

	if a.Debug {
		a.Logger.Debug("register payload: %s", print.MaybeHighlightJSON(payload))
	}

	if err := payload.Validate(); err != nil {
		if fields, ok := FormatValidationErrorToMap(err); ok {
			return ctx.JSON(router.StatusBadRequest, map[string]any{"errors": fields})
		}
		return ctx.JSON(router.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	handler := NewRegisterUserHandler(a.Repo)
	err := handler.Execute(ctx.Context(), RegisterUserMessage{
		Username:    payload.Username,
		Email:       payload.Email,
		PhoneNumber: payload.PhoneNumber,
		Password:    payload.Password,
	})
	if err != nil {
		return writeError(ctx, a.Logger, err)
	}

	return ctx.Status(http.StatusCreated).
		SendString(fmt.Sprintf("User '%s' has been created.", payload.Username))
}

// Login verifies credentials, sets the refresh-token cookie, and
// returns the access token with the user id.
func (a *AccountController) Login(ctx router.Context) error {
	payload := LoginRequest{}
	if err := ctx.Bind(&payload); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{"error": "invalid request body"})
	}

	if err := payload.Validate(); err != nil {
		if fields, ok := FormatValidationErrorToMap(err); ok {
			return ctx.JSON(router.StatusBadRequest, map[string]any{"errors": fields})
		}
		return ctx.JSON(router.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	pair, err := a.Auther.Login(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		return writeError(ctx, a.Logger, err)
	}

	setRefreshCookie(ctx, a.Settings, pair.RefreshToken, pair.ExpiresAt)

	return ctx.JSON(router.StatusOK, map[string]any{
		"accessToken": pair.AccessToken,
		"user":        pair.Identity.ID(),
	})
}

// RefreshToken redeems the refresh cookie for a fresh token pair. The
// caller identifies itself with the `user` header; the cookie does the
// authenticating.
func (a *AccountController) RefreshToken(ctx router.Context) error {
	presented := ctx.Cookies(a.Settings.GetRefreshCookieName())
	identifier := ctx.GetString("user", "")

	if presented == "" || identifier == "" {
		return ctx.JSON(router.StatusBadRequest, map[string]any{"error": "missing refresh token"})
	}

	pair, err := a.Auther.Refresh(ctx.Context(), identifier, presented)
	if err != nil {
		return writeError(ctx, a.Logger, err)
	}

	setRefreshCookie(ctx, a.Settings, pair.RefreshToken, pair.ExpiresAt)

	return ctx.JSON(router.StatusOK, map[string]any{
		"accessToken": pair.AccessToken,
		"userName":    pair.Identity.Username(),
	})
}

// Revoke clears the caller's stored refresh token. Runs behind the
// Bearer middleware, so the target user always comes from claims.
func (a *AccountController) Revoke(ctx router.Context) error {
	claims, ok := GetRouterClaims(ctx, a.Settings.GetContextKey())
	if !ok {
		return ctx.JSON(router.StatusUnauthorized, map[string]any{"error": "invalid or expired token"})
	}

	if err := a.Auther.Revoke(ctx.Context(), claims.UserID()); err != nil {
		return writeError(ctx, a.Logger, err)
	}

	clearRefreshCookie(ctx, a.Settings)

	return ctx.NoContent(http.StatusNoContent)
}

var hasDigit = regexp.MustCompile(`[0-9]`)

// RegistrationCreatePayload is the register request body.
type RegistrationCreatePayload struct {
	Username    string `json:"username" form:"username"`
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	PhoneNumber string `json:"phone_number" form:"phone_number"`
}

func (p RegistrationCreatePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password,
			validation.Required,
			validation.Length(8, 128),
			validation.Match(hasDigit).Error("must contain at least one digit"),
		),
	)
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (p LoginRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required),
		validation.Field(&p.Password, validation.Required),
	)
}

// FormatValidationErrorToMap flattens ozzo field errors into the
// per-field map the API returns on 400s.
func FormatValidationErrorToMap(err error) (map[string]string, bool) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if ferr == nil {
			continue
		}
		out[field] = ferr.Error()
	}
	return out, true
}
