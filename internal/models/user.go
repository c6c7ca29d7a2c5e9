package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the RBAC role carried by a user and by its session tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a textual role. An empty string maps to RoleUser.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // don’t expose hash
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Reset transaction overlay; both set or both nil.
	ResetCode      *string    `json:"-" db:"-"`
	ResetExpiresAt *time.Time `json:"-" db:"-"`
}

// UserUpdate carries the optional fields of a self-service update.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// Empty reports whether the update changes nothing.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.PasswordHash == nil
}
