package todoapp

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is a registered account. RefreshToken holds the single live
// opaque refresh token, or the empty string when none is outstanding.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username     string    `bun:"username,notnull,unique" json:"username,omitempty"`
	Email        string    `bun:"email,notnull,unique" json:"email,omitempty"`
	PhoneNumber  string    `bun:"phone_number,nullzero" json:"phone_number,omitempty"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`

	RefreshToken          string     `bun:"refresh_token,nullzero" json:"-"`
	RefreshTokenExpiresAt *time.Time `bun:"refresh_token_expires_at,nullzero" json:"-"`

	LoginAttempts  int        `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt *time.Time `bun:"login_attempt_at,nullzero" json:"login_attempt_at,omitempty"`
	LoggedInAt     *time.Time `bun:"loggedin_at,nullzero" json:"loggedin_at,omitempty"`

	CreatedAt *time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt *time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// TodoItem is a single to-do entry owned by a user. The owner comes
// from validated token claims, never from client input.
type TodoItem struct {
	bun.BaseModel `bun:"table:todo_items,alias:tdi"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	Todo       string    `bun:"todo,notnull" json:"todo"`
	IsComplete bool      `bun:"is_complete" json:"isComplete"`
	UserID     uuid.UUID `bun:"user_id,notnull,type:uuid" json:"-"`
	User       *User     `bun:"rel:belongs-to,join:user_id=id" json:"-"`

	CreatedAt *time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"-"`
}
