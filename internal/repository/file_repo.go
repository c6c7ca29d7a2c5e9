package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"file_vault/internal/models"

	"github.com/jmoiron/sqlx"
)

type FileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) *FileRepository { return &FileRepository{db: db} }

var _ Files = (*FileRepository)(nil)

const (
	fileColumns = `id, filename, content_type, size_bytes, storage_key, uploaded_by, created_at`

	insertFileSQL = `INSERT INTO files (` + fileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectFileSQL = `SELECT ` + fileColumns + ` FROM files WHERE id = ?`
	listFilesSQL  = `SELECT ` + fileColumns + ` FROM files ORDER BY created_at DESC, id`
	deleteFileSQL = `DELETE FROM files WHERE id = ?`
)

func (r *FileRepository) Create(ctx context.Context, f models.File) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertFileSQL),
		f.ID, f.Filename, f.ContentType, f.SizeBytes, f.StorageKey, f.UploadedBy, f.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert file %s: %w", f.ID, ErrDuplicate)
		}
		return fmt.Errorf("insert file %s: %w", f.ID, err)
	}
	return nil
}

// GetByID returns (nil, nil) if the file is not catalogued.
func (r *FileRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	var f models.File
	if err := r.db.GetContext(ctx, &f, r.db.Rebind(selectFileSQL), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select file %s: %w", id, err)
	}
	f.CreatedAt = f.CreatedAt.UTC()
	return &f, nil
}

func (r *FileRepository) List(ctx context.Context) ([]models.File, error) {
	out := make([]models.File, 0)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(listFilesSQL)); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	for i := range out {
		out[i].CreatedAt = out[i].CreatedAt.UTC()
	}
	return out, nil
}

func (r *FileRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(deleteFileSQL), id)
	if err != nil {
		return fmt.Errorf("delete file %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for file %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete file %s: %w", id, ErrNotFound)
	}
	return nil
}
