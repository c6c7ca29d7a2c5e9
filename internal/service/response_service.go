package service

import (
	"io"
	"time"
)

// LogFilter supports audit history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "LOGIN_FAILED", "RESET_COMPLETED", ...
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	Role      string
	ExpiresAt time.Time
}

// NewUser is the admin input for creating an account.
type NewUser struct {
	Username string
	Password string
	Email    string
	Role     string // "" means user
}

// DetailsUpdate is a self-service change; nil fields are left alone.
type DetailsUpdate struct {
	Username *string
	Email    *string
	Password *string
}

// Upload describes an incoming file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
