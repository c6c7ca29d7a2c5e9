package repository

import (
	"context"
	"io"
	"time"

	"file_vault/internal/models"

	"github.com/jmoiron/sqlx"
)

// Users is the credential store. Lookups return (nil, nil) when no row matches.
type Users interface {
	Create(ctx context.Context, u *models.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) error

	// SetResetCode overwrites the reset code and expiry of username.
	// It reports false when no such user exists.
	SetResetCode(ctx context.Context, username, code string, expiresAt time.Time) (bool, error)
	// MatchResetCode reports whether username holds code with an expiry after now.
	MatchResetCode(ctx context.Context, username, code string, now time.Time) (bool, error)
	// ConsumeResetCode replaces the password hash and clears the reset code in one
	// conditional statement. It reports false and changes nothing when the code
	// does not match or has expired.
	ConsumeResetCode(ctx context.Context, username, code string, now time.Time, passwordHash string) (bool, error)
}

type Files interface {
	Create(ctx context.Context, f models.File) error
	GetByID(ctx context.Context, id string) (*models.File, error)
	List(ctx context.Context) ([]models.File, error)
	Delete(ctx context.Context, id string) error
}

type Blobs interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type EventRepo interface {
	Append(ctx context.Context, e models.AuditEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.AuditEvent, error)
}

type Repository struct {
	Users  Users
	Files  Files
	Blobs  Blobs
	Events EventRepo
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Users:  NewUserRepository(db),
		Files:  NewFileRepository(db),
		Blobs:  NewBlobRepository(db),
		Events: NewEventRepository(db),
	}
}
