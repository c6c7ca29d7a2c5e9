package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"file_vault/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const userColumns = `id, username, email, password_hash, role, reset_code, reset_expires_at, created_at`

const (
	insertUserSQL = `INSERT INTO users (username, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`

	selectUserByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	selectUserByIDSQL       = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	listUsersSQL            = `SELECT ` + userColumns + ` FROM users ORDER BY id`
	deleteUserSQL           = `DELETE FROM users WHERE id = ?`

	setResetCodeSQL     = `UPDATE users SET reset_code = ?, reset_expires_at = ? WHERE username = ?`
	matchResetCodeSQL   = `SELECT COUNT(*) FROM users WHERE username = ? AND reset_code = ? AND reset_expires_at > ?`
	consumeResetCodeSQL = `UPDATE users SET password_hash = ?, reset_code = NULL, reset_expires_at = NULL ` +
		`WHERE username = ? AND reset_code = ? AND reset_expires_at > ?`
)

// userRow mirrors the users table; reset fields are nullable.
type userRow struct {
	ID             int64          `db:"id"`
	Username       string         `db:"username"`
	Email          string         `db:"email"`
	PasswordHash   string         `db:"password_hash"`
	Role           string         `db:"role"`
	ResetCode      sql.NullString `db:"reset_code"`
	ResetExpiresAt sql.NullInt64  `db:"reset_expires_at"` // unix milliseconds
	CreatedAt      time.Time      `db:"created_at"`
}

func (r userRow) toModel() models.User {
	u := models.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         models.Role(r.Role),
		CreatedAt:    r.CreatedAt.UTC(),
	}
	if r.ResetCode.Valid && r.ResetExpiresAt.Valid {
		code := r.ResetCode.String
		exp := time.UnixMilli(r.ResetExpiresAt.Int64).UTC()
		u.ResetCode = &code
		u.ResetExpiresAt = &exp
	}
	return u
}

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (int64, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(insertUserSQL),
		u.Username, u.Email, u.PasswordHash, string(u.Role), createdAt.UTC(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %q: %w", u.Username, ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	u.ID = id
	u.CreatedAt = createdAt.UTC()
	return id, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, selectUserByUsernameSQL, username)
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, selectUserByIDSQL, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %v: %w", arg, err)
	}
	u := row.toModel()
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(listUsersSQL)); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]models.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// Update applies the non-nil fields of upd and returns the fresh row.
// Returns (nil, nil) if the user does not exist.
func (r *UserRepository) Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	var (
		sets []string
		args []any
	)
	if upd.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *upd.Username)
	}
	if upd.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *upd.Email)
	}
	if upd.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *upd.PasswordHash)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	q := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, r.db.Rebind(q), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("update user %d: %w", id, ErrDuplicate)
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for user %d: %w", id, err)
	}
	if n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(deleteUserSQL), id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for user %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete user %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *UserRepository) SetResetCode(ctx context.Context, username, code string, expiresAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(setResetCodeSQL), code, expiresAt.UnixMilli(), username)
	if err != nil {
		return false, fmt.Errorf("set reset code for %q: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for %q: %w", username, err)
	}
	return n > 0, nil
}

func (r *UserRepository) MatchResetCode(ctx context.Context, username, code string, now time.Time) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(matchResetCodeSQL), username, code, now.UnixMilli()); err != nil {
		return false, fmt.Errorf("match reset code for %q: %w", username, err)
	}
	return n > 0, nil
}

func (r *UserRepository) ConsumeResetCode(ctx context.Context, username, code string, now time.Time, passwordHash string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(consumeResetCodeSQL), passwordHash, username, code, now.UnixMilli())
	if err != nil {
		return false, fmt.Errorf("consume reset code for %q: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for %q: %w", username, err)
	}
	return n == 1, nil
}
