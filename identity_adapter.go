package todoapp

type authIdentity struct {
	id       string
	username string
	email    string
}

var _ Identity = (*authIdentity)(nil)

func (a *authIdentity) ID() string       { return a.id }
func (a *authIdentity) Username() string { return a.username }
func (a *authIdentity) Email() string    { return a.email }

// NewIdentityFromUser adapts a stored user row to the Identity
// interface.
func NewIdentityFromUser(user *User) Identity {
	return &authIdentity{
		id:       user.ID.String(),
		username: user.Username,
		email:    user.Email,
	}
}
