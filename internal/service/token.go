package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"file_vault/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
)

// TokenTTL is the lifetime of a session token.
const TokenTTL = time.Hour

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int64       `json:"user_id"`
	Role   models.Role `json:"role"`
}

// TokenManager issues and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

var errEmptySecret = errors.New("jwt secret is empty")

func NewTokenManager(secret string) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errEmptySecret
	}
	return &TokenManager{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for the user; it expires exactly TokenTTL after issuance.
func (m *TokenManager) Issue(userID int64, role models.Role) (string, time.Time, error) {
	iat := m.now().UTC().Truncate(time.Second)
	exp := iat.Add(TokenTTL)

	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID: userID,
		Role:   role,
	})
	signed, err := tk.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, oops.Code("AUTH_TOKEN_SIGN_FAILED").With("user_id", userID).Wrap(err)
	}
	return signed, exp, nil
}

// Verify returns ErrInvalidToken for any token that is malformed, not HS256,
// badly signed, expired or carrying an unknown role.
func (m *TokenManager) Verify(accessToken string) (models.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(accessToken, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return models.Identity{}, ErrInvalidToken
	}

	if claims.UserID <= 0 || claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return models.Identity{}, ErrInvalidToken
	}
	switch claims.Role {
	case models.RoleUser, models.RoleAdmin:
	default:
		return models.Identity{}, ErrInvalidToken
	}
	return models.Identity{UserID: claims.UserID, Role: claims.Role}, nil
}
