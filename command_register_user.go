package todoapp

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/nyaruka/phonenumbers"
	"github.com/uptrace/bun"
)

// RegisterUserMessage carries the attributes of a new account.
type RegisterUserMessage struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	// UseHashid derives the user id deterministically from the email
	// instead of generating a random uuid.
	UseHashid bool `json:"-"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// RegisterUserHandler creates the account inside a transaction.
type RegisterUserHandler struct {
	repo RepositoryManager
}

func NewRegisterUserHandler(repo RepositoryManager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) error {
	return h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		phone, err := normalizePhoneNumber(event.PhoneNumber)
		if err != nil {
			return err
		}

		hash, err := HashPassword(event.Password)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to hash password")
		}

		user := &User{
			Username:     getUsername(event),
			Email:        event.Email,
			PhoneNumber:  phone,
			PasswordHash: hash,
		}

		if event.UseHashid {
			id, err := hashid.NewUUID(event.Email)
			if err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to derive user id")
			}
			user.ID = id
		}

		if _, err := h.repo.Users().RegisterTx(ctx, tx, user); err != nil {
			if isUniqueViolation(err) {
				return goerrors.New("username or email already taken", goerrors.CategoryConflict).
					WithCode(goerrors.CodeConflict)
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to create user")
		}

		return nil
	})
}

func getUsername(event RegisterUserMessage) string {
	if event.Username != "" {
		return event.Username
	}
	username := event.Email
	if i := strings.Index(username, "@"); i > 0 {
		username = username[:i]
	}
	return username
}

// normalizePhoneNumber validates an optional phone number and stores it
// in E.164 form. Numbers have to carry their country code.
func normalizePhoneNumber(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	parsed, err := phonenumbers.Parse(raw, "")
	if err != nil {
		return "", goerrors.New("phone number is not valid", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", goerrors.New("phone number is not valid", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
