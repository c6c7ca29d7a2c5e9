package service

import (
	"context"
	"errors"
	"strings"

	"file_vault/internal/models"
	"file_vault/internal/repository"

	"github.com/samber/oops"
)

type UserService struct {
	users  repository.Users
	hasher PasswordHasher
	audit  *AuditRecorder
}

func NewUserService(users repository.Users, hasher PasswordHasher, audit *AuditRecorder) *UserService {
	return &UserService{users: users, hasher: hasher, audit: audit}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, oops.Code("USER_LIST_FAILED").Wrap(err)
	}
	return users, nil
}

// AddUser creates an account on behalf of an administrator.
func (s *UserService) AddUser(ctx context.Context, actor models.Identity, in NewUser) (*models.User, error) {
	u, err := createUser(ctx, s.users, s.hasher, in)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, models.EventUserAdded, "user added",
		map[string]any{"actor_id": actor.UserID, "user_id": u.ID, "username": u.Username, "role": u.Role})
	return u, nil
}

func (s *UserService) RemoveUser(ctx context.Context, actor models.Identity, id int64) error {
	if id <= 0 {
		return validationError("invalid user id")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return oops.Code("USER_REMOVE_FAILED").With("user_id", id).Wrap(err)
	}
	s.audit.Record(ctx, models.EventUserRemoved, "user removed",
		map[string]any{"actor_id": actor.UserID, "user_id": id})
	return nil
}

// UpdateDetails changes the caller's own username, email or password.
func (s *UserService) UpdateDetails(ctx context.Context, id int64, in DetailsUpdate) (*models.User, error) {
	var upd models.UserUpdate
	var changed []string

	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return nil, validationError("username cannot be empty")
		}
		upd.Username = &name
		changed = append(changed, "username")
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		upd.Email = &email
		changed = append(changed, "email")
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hash
		changed = append(changed, "password")
	}
	if upd.Empty() {
		return nil, validationError("nothing to update")
	}

	u, err := s.users.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validationError("username or email already exists")
		}
		return nil, oops.Code("USER_UPDATE_FAILED").With("user_id", id).Wrap(err)
	}
	if u == nil {
		return nil, ErrNotFound
	}
	s.audit.Record(ctx, models.EventUserUpdated, "user details updated",
		map[string]any{"user_id": id, "fields": changed})
	return u, nil
}
