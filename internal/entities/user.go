package entities

// UserKind tags the account variant instead of a type hierarchy
type UserKind string

const (
	UserKindPlayer UserKind = "player"
	UserKindAdmin  UserKind = "admin"
)

// User holds the identity fields shared by every account kind. The core
// never authenticates; it trusts the identifier the identity boundary
// hands it.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Kind         UserKind `json:"kind"`
}

// IsAdmin reports whether the account is an admin
func (u *User) IsAdmin() bool {
	return u.Kind == UserKindAdmin
}
