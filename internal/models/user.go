package models

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned when a persisted value does not have the expected shape.
var ErrMalformed = errors.New("malformed persisted state")

// Role is the role of a user.
type Role string

const (
	RoleTeen  Role = "teen"
	RoleAdmin Role = "admin"
)

// ParseRole parses a role string. Unknown roles are rejected.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleTeen, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User is the identity held by an authenticated session.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// FirstName returns the first whitespace separated word of the name.
func (u *User) FirstName() string {
	if u == nil {
		return ""
	}
	for i, r := range u.Name {
		if r == ' ' || r == '\t' {
			return u.Name[:i]
		}
	}
	return u.Name
}

// Validate checks the invariants of a user read from persistence.
func (u *User) Validate() error {
	if u == nil {
		return fmt.Errorf("%w: missing user", ErrMalformed)
	}
	if u.ID == "" {
		return fmt.Errorf("%w: empty user id", ErrMalformed)
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}

// StoredCredential is a registered account as persisted in the registry.
// Password holds an argon2id PHC string when Hashed is set, plaintext otherwise.
type StoredCredential struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Hashed   bool   `json:"hashed,omitempty"`
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

// User returns the record without its password.
func (s StoredCredential) User() User {
	return User{
		ID:     s.ID,
		Name:   s.Name,
		Email:  s.Email,
		Role:   s.Role,
		Avatar: s.Avatar,
	}
}

// Validate checks the invariants of a record read from persistence.
func (s StoredCredential) Validate() error {
	u := s.User()
	return u.Validate()
}
