package service

import (
	"context"
	"errors"
	netmail "net/mail"
	"strings"
	"sync"

	"file_vault/internal/logger"
	"file_vault/internal/mail"
	"file_vault/internal/metrics"
	"file_vault/internal/models"
	"file_vault/internal/repository"

	"github.com/samber/oops"
)

// dummyPassword is hashed once and checked on logins for unknown users so
// both paths cost one bcrypt comparison.
const dummyPassword = "file-vault-unknown-user"

// AuthService composes the credential store, hasher, token manager and
// reset state machine into the login and password reset flows.
type AuthService struct {
	users   repository.Users
	hasher  PasswordHasher
	tokens  *TokenManager
	resets  *ResetCodeService
	mailer  mail.Sender
	audit   *AuditRecorder
	metrics *metrics.Metrics
	log     *logger.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(
	users repository.Users,
	hasher PasswordHasher,
	tokens *TokenManager,
	mailer mail.Sender,
	audit *AuditRecorder,
	m *metrics.Metrics,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		resets:  NewResetCodeService(users, hasher),
		mailer:  mailer,
		audit:   audit,
		metrics: m,
		log:     log,
	}
}

// RegisterAdmin creates an account with the admin role.
func (s *AuthService) RegisterAdmin(ctx context.Context, username, password, email string) (*models.User, error) {
	u, err := createUser(ctx, s.users, s.hasher, NewUser{
		Username: username, Password: password, Email: email, Role: string(models.RoleAdmin),
	})
	if err != nil {
		s.metrics.AuthEvent("register_admin", outcomeOf(err))
		return nil, err
	}
	s.metrics.AuthEvent("register_admin", metrics.OutcomeSuccess)
	s.audit.Record(ctx, models.EventAdminRegistered, "admin account registered",
		map[string]any{"user_id": u.ID, "username": u.Username})
	return u, nil
}

// Login checks the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		s.metrics.AuthEvent("login", metrics.OutcomeError)
		return LoginResult{}, oops.Code("AUTH_LOGIN_FAILED").With("username", username).Wrap(err)
	}

	if u == nil {
		s.dummyOnce.Do(func() {
			s.dummyHash, _ = s.hasher.Hash(dummyPassword)
		})
		_, _ = s.hasher.Verify(password, s.dummyHash)
		s.loginFailed(ctx, username, "unknown user")
		return LoginResult{}, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		s.metrics.AuthEvent("login", metrics.OutcomeError)
		return LoginResult{}, oops.Code("AUTH_LOGIN_FAILED").
			With("username", username).
			With("operation", "verify password").
			Wrap(err)
	}
	if !ok {
		s.loginFailed(ctx, username, "wrong password")
		return LoginResult{}, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		s.metrics.AuthEvent("login", metrics.OutcomeError)
		return LoginResult{}, err
	}

	s.metrics.AuthEvent("login", metrics.OutcomeSuccess)
	s.audit.Record(ctx, models.EventLoginSucceeded, "login succeeded",
		map[string]any{"user_id": u.ID, "username": u.Username})
	return LoginResult{Token: token, Role: string(u.Role), ExpiresAt: exp}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, username, reason string) {
	s.metrics.AuthEvent("login", metrics.OutcomeRejected)
	s.audit.Record(ctx, models.EventLoginFailed, "login failed",
		map[string]any{"username": username, "reason": reason})
}

// SendResetCode issues a reset code and mails it. The code stays stored
// even when delivery fails.
func (s *AuthService) SendResetCode(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return validationError("username is required")
	}

	code, u, err := s.resets.RequestCode(ctx, username)
	if err != nil {
		s.metrics.AuthEvent("reset_request", outcomeOf(err))
		return err
	}
	s.audit.Record(ctx, models.EventResetRequested, "password reset code issued",
		map[string]any{"user_id": u.ID, "username": u.Username})

	if err := s.mailer.SendResetCode(ctx, u.Email, code); err != nil {
		s.metrics.AuthEvent("reset_request", metrics.OutcomeError)
		return oops.Code("RESET_MAIL_FAILED").With("username", username).Wrap(err)
	}
	s.metrics.AuthEvent("reset_request", metrics.OutcomeSuccess)
	return nil
}

func (s *AuthService) VerifyResetCode(ctx context.Context, username, code string) error {
	username = strings.TrimSpace(username)
	ok, err := s.resets.VerifyCode(ctx, username, strings.TrimSpace(code))
	if err != nil {
		s.metrics.AuthEvent("reset_verify", metrics.OutcomeError)
		return err
	}
	if !ok {
		s.metrics.AuthEvent("reset_verify", metrics.OutcomeRejected)
		s.audit.Record(ctx, models.EventResetFailed, "reset code rejected",
			map[string]any{"username": username, "stage": "verify"})
		return ErrInvalidResetCode
	}
	s.metrics.AuthEvent("reset_verify", metrics.OutcomeSuccess)
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	username = strings.TrimSpace(username)
	ok, err := s.resets.ConsumeCode(ctx, username, strings.TrimSpace(code), newPassword)
	if err != nil {
		s.metrics.AuthEvent("reset_complete", outcomeOf(err))
		return err
	}
	if !ok {
		s.metrics.AuthEvent("reset_complete", metrics.OutcomeRejected)
		s.audit.Record(ctx, models.EventResetFailed, "reset code rejected",
			map[string]any{"username": username, "stage": "reset"})
		return ErrInvalidResetCode
	}
	s.metrics.AuthEvent("reset_complete", metrics.OutcomeSuccess)
	s.audit.Record(ctx, models.EventResetCompleted, "password reset completed",
		map[string]any{"username": username})
	return nil
}

// ParseToken resolves the caller behind a bearer token.
func (s *AuthService) ParseToken(accessToken string) (models.Identity, error) {
	return s.tokens.Verify(accessToken)
}

// createUser validates input, hashes the password and stores the account.
func createUser(ctx context.Context, users repository.Users, hasher PasswordHasher, in NewUser) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" {
		return nil, validationError("username is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	role, err := models.ParseRole(in.Role)
	if err != nil {
		return nil, validationError("%v", err)
	}
	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{Username: username, Email: email, PasswordHash: hash, Role: role}
	if _, err := users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validationError("username or email already exists")
		}
		return nil, oops.Code("USER_CREATE_FAILED").With("username", username).Wrap(err)
	}
	return u, nil
}

func validateEmail(email string) error {
	if email == "" {
		return validationError("email is required")
	}
	addr, err := netmail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return validationError("invalid email address")
	}
	return nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidResetCode):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
