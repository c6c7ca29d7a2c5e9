package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"

	"file_vault/internal/models"
	"file_vault/internal/repository"

	"github.com/samber/oops"
)

// ResetCodeTTL is how long an issued reset code stays valid.
const ResetCodeTTL = time.Hour

const (
	resetCodeMin = 100000
	resetCodeMax = 999999
)

// ResetCodeService is the per-user reset state machine:
// no active reset -> code issued -> (consumed) no active reset.
type ResetCodeService struct {
	users  repository.Users
	hasher PasswordHasher
	now    func() time.Time
}

func NewResetCodeService(users repository.Users, hasher PasswordHasher) *ResetCodeService {
	return &ResetCodeService{users: users, hasher: hasher, now: time.Now}
}

// RequestCode issues a fresh code for username, replacing any previous one.
func (s *ResetCodeService) RequestCode(ctx context.Context, username string) (string, *models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, oops.Code("RESET_REQUEST_FAILED").With("username", username).Wrap(err)
	}
	if u == nil {
		return "", nil, ErrNotFound
	}

	code, err := generateResetCode()
	if err != nil {
		return "", nil, oops.Code("RESET_CODE_GENERATION_FAILED").Wrap(err)
	}
	expiresAt := s.now().Add(ResetCodeTTL)

	ok, err := s.users.SetResetCode(ctx, username, code, expiresAt)
	if err != nil {
		return "", nil, oops.Code("RESET_REQUEST_FAILED").With("username", username).Wrap(err)
	}
	if !ok {
		// removed between lookup and update
		return "", nil, ErrNotFound
	}
	u.ResetCode = &code
	u.ResetExpiresAt = &expiresAt
	return code, u, nil
}

// VerifyCode reports whether code is the live code of username. Wrong,
// expired and unknown-user cases are all plain false.
func (s *ResetCodeService) VerifyCode(ctx context.Context, username, code string) (bool, error) {
	if !wellFormedCode(code) {
		return false, nil
	}
	ok, err := s.users.MatchResetCode(ctx, username, code, s.now())
	if err != nil {
		return false, oops.Code("RESET_VERIFY_FAILED").With("username", username).Wrap(err)
	}
	return ok, nil
}

// ConsumeCode sets the new password and clears the code in one conditional
// update. On false nothing was changed.
func (s *ResetCodeService) ConsumeCode(ctx context.Context, username, code, newPassword string) (bool, error) {
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return false, err
	}
	if !wellFormedCode(code) {
		return false, nil
	}
	ok, err := s.users.ConsumeResetCode(ctx, username, code, s.now(), hash)
	if err != nil {
		return false, oops.Code("RESET_CONSUME_FAILED").With("username", username).Wrap(err)
	}
	return ok, nil
}

// generateResetCode returns a uniformly distributed code in [100000, 999999].
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(resetCodeMax-resetCodeMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+resetCodeMin, 10), nil
}

func wellFormedCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	return strings.IndexFunc(code, func(r rune) bool { return r < '0' || r > '9' }) < 0
}
