package service

import (
	"context"
	"io"

	"file_vault/internal/logger"
	"file_vault/internal/mail"
	"file_vault/internal/metrics"
	"file_vault/internal/models"
	"file_vault/internal/repository"
)

// Authorization covers login, admin registration, the reset flows and
// token resolution for the auth middleware.
type Authorization interface {
	RegisterAdmin(ctx context.Context, username, password, email string) (*models.User, error)
	Login(ctx context.Context, username, password string) (LoginResult, error)
	SendResetCode(ctx context.Context, username string) error
	VerifyResetCode(ctx context.Context, username, code string) error
	ResetPassword(ctx context.Context, username, code, newPassword string) error
	ParseToken(accessToken string) (models.Identity, error)
}

// Users is account administration and self-service profile edits.
type Users interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	AddUser(ctx context.Context, actor models.Identity, in NewUser) (*models.User, error)
	RemoveUser(ctx context.Context, actor models.Identity, id int64) error
	UpdateDetails(ctx context.Context, id int64, in DetailsUpdate) (*models.User, error)
}

// Files is the file catalog together with its content store.
type Files interface {
	ListFiles(ctx context.Context) ([]models.File, error)
	UploadFile(ctx context.Context, actor models.Identity, in Upload) (*models.File, error)
	RemoveFile(ctx context.Context, actor models.Identity, id string) error
	OpenFile(ctx context.Context, id string) (*models.File, io.ReadCloser, error)
	MaxUploadBytes() int64
}

// AuditLog exposes append-only security events with filtering access.
type AuditLog interface {
	ListEvents(ctx context.Context, f LogFilter) ([]models.AuditEvent, error)
}

type Service struct {
	Authorization
	Users
	Files
	AuditLog
}

// Deps are the collaborators NewService wires together.
type Deps struct {
	Repos          *repository.Repository
	Tokens         *TokenManager
	Hasher         PasswordHasher
	Mailer         mail.Sender
	Metrics        *metrics.Metrics
	Log            *logger.Logger
	MaxUploadBytes int64
}

func NewService(d Deps) *Service {
	audit := NewAuditRecorder(d.Repos.Events, d.Log)
	return &Service{
		Authorization: NewAuthService(d.Repos.Users, d.Hasher, d.Tokens, d.Mailer, audit, d.Metrics, d.Log),
		Users:         NewUserService(d.Repos.Users, d.Hasher, audit),
		Files:         NewFileService(d.Repos.Files, d.Repos.Blobs, audit, d.Metrics, d.Log, d.MaxUploadBytes),
		AuditLog:      NewAuditLogService(d.Repos.Events),
	}
}
