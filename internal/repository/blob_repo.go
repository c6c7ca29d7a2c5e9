package repository

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"
)

// BlobRepository keeps file contents in the file_blobs table. It is the
// default store when no object storage is configured.
type BlobRepository struct {
	db *sqlx.DB
}

func NewBlobRepository(db *sqlx.DB) *BlobRepository { return &BlobRepository{db: db} }

var _ Blobs = (*BlobRepository)(nil)

const (
	insertBlobSQL = `INSERT INTO file_blobs (storage_key, content_type, data) VALUES (?, ?, ?)`
	selectBlobSQL = `SELECT data FROM file_blobs WHERE storage_key = ?`
	deleteBlobSQL = `DELETE FROM file_blobs WHERE storage_key = ?`
)

func (r *BlobRepository) Put(ctx context.Context, key string, rd io.Reader, size int64, contentType string) error {
	buf := bytes.NewBuffer(make([]byte, 0, max(size, 0)))
	if _, err := io.Copy(buf, rd); err != nil {
		return fmt.Errorf("read blob %s: %w", key, err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(insertBlobSQL), key, contentType, buf.Bytes()); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert blob %s: %w", key, ErrDuplicate)
		}
		return fmt.Errorf("insert blob %s: %w", key, err)
	}
	return nil
}

// Get returns ErrNotFound when no blob is stored under key.
func (r *BlobRepository) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	var data []byte
	if err := r.db.GetContext(ctx, &data, r.db.Rebind(selectBlobSQL), key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("blob %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("select blob %s: %w", key, err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete is idempotent.
func (r *BlobRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(deleteBlobSQL), key); err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}
