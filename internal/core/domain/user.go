package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account roles. The zero value is not a valid role
// and is never persisted.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleUser
	RoleAdmin
)

// MinPasswordLength is the minimum number of raw characters in a password.
const MinPasswordLength = 6

// ParseRole converts the stored or signed string form of a role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	}
	return RoleUnknown, fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	}
	return ""
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", r)
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// User is a registered business account.
type User struct {
	ID                  string    `json:"_id"`
	Name                string    `json:"name"`
	BusinessName        string    `json:"businessName"`
	Email               string    `json:"email"`
	PasswordHash        string    `json:"-"`
	Phone               string    `json:"phone"`
	Address             string    `json:"address"`
	BusinessDescription string    `json:"businessDescription"`
	Category            string    `json:"category"`
	Logo                string    `json:"logo"`
	IsActive            bool      `json:"isActive"`
	Role                Role      `json:"role"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// UserPatch carries the profile fields a user may change. A nil field is left
// untouched; a non-nil field is written even when it points at "".
type UserPatch struct {
	Name                *string
	Phone               *string
	Address             *string
	BusinessName        *string
	BusinessDescription *string
	Category            *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Address == nil &&
		p.BusinessName == nil && p.BusinessDescription == nil && p.Category == nil
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
