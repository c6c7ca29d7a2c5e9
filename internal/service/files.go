package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"file_vault/internal/logger"
	"file_vault/internal/metrics"
	"file_vault/internal/models"
	"file_vault/internal/repository"
	"file_vault/internal/storage"

	"github.com/google/uuid"
	"github.com/samber/oops"
)

const defaultContentType = "application/octet-stream"

// ErrFileTooLarge is a validation error raised for uploads over the limit.
var ErrFileTooLarge = fmt.Errorf("%w: file too large", ErrValidation)

type FileService struct {
	files     repository.Files
	blobs     repository.Blobs
	audit     *AuditRecorder
	metrics   *metrics.Metrics
	log       *logger.Logger
	maxUpload int64
	now       func() time.Time
}

func NewFileService(
	files repository.Files,
	blobs repository.Blobs,
	audit *AuditRecorder,
	m *metrics.Metrics,
	log *logger.Logger,
	maxUpload int64,
) *FileService {
	return &FileService{
		files:     files,
		blobs:     blobs,
		audit:     audit,
		metrics:   m,
		log:       log,
		maxUpload: maxUpload,
		now:       time.Now,
	}
}

// MaxUploadBytes is the largest accepted upload.
func (s *FileService) MaxUploadBytes() int64 { return s.maxUpload }

func (s *FileService) ListFiles(ctx context.Context) ([]models.File, error) {
	files, err := s.files.List(ctx)
	if err != nil {
		return nil, oops.Code("FILE_LIST_FAILED").Wrap(err)
	}
	return files, nil
}

// UploadFile stores the content first and then catalogs it; a failed
// catalog insert removes the stored content again.
func (s *FileService) UploadFile(ctx context.Context, actor models.Identity, in Upload) (*models.File, error) {
	name := filepath.Base(strings.TrimSpace(in.Filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, validationError("filename is required")
	}
	if in.Body == nil {
		return nil, validationError("file content is required")
	}
	if in.Size > s.maxUpload {
		return nil, ErrFileTooLarge
	}
	contentType := strings.TrimSpace(in.ContentType)
	if contentType == "" {
		contentType = defaultContentType
	}

	now := s.now().UTC()
	f := models.File{
		ID:          uuid.NewString(),
		Filename:    name,
		ContentType: contentType,
		SizeBytes:   in.Size,
		StorageKey:  storage.NewStorageKey(now),
		UploadedBy:  actor.UserID,
		CreatedAt:   now,
	}

	if err := s.blobs.Put(ctx, f.StorageKey, in.Body, f.SizeBytes, f.ContentType); err != nil {
		return nil, oops.Code("FILE_STORE_FAILED").With("filename", name).Wrap(err)
	}
	if err := s.files.Create(ctx, f); err != nil {
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), f.StorageKey); delErr != nil {
			s.log.Warnw("blob_cleanup_failed", "storage_key", f.StorageKey, "error", delErr)
		}
		return nil, oops.Code("FILE_CATALOG_FAILED").With("filename", name).Wrap(err)
	}

	s.metrics.BlobStored(f.SizeBytes)
	s.audit.Record(ctx, models.EventFileUploaded, "file uploaded",
		map[string]any{"actor_id": actor.UserID, "file_id": f.ID, "filename": f.Filename, "size_bytes": f.SizeBytes})
	return &f, nil
}

// RemoveFile drops the catalog entry and then its content.
func (s *FileService) RemoveFile(ctx context.Context, actor models.Identity, id string) error {
	f, err := s.files.GetByID(ctx, id)
	if err != nil {
		return oops.Code("FILE_REMOVE_FAILED").With("file_id", id).Wrap(err)
	}
	if f == nil {
		return ErrNotFound
	}
	if err := s.files.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return oops.Code("FILE_REMOVE_FAILED").With("file_id", id).Wrap(err)
	}
	if err := s.blobs.Delete(ctx, f.StorageKey); err != nil {
		// catalog entry is gone; orphaned content is only logged
		s.log.Warnw("blob_delete_failed", "file_id", id, "storage_key", f.StorageKey, "error", err)
	}
	s.audit.Record(ctx, models.EventFileRemoved, "file removed",
		map[string]any{"actor_id": actor.UserID, "file_id": id, "filename": f.Filename})
	return nil
}

// OpenFile returns the catalog entry and a reader over its content.
// The caller closes the reader.
func (s *FileService) OpenFile(ctx context.Context, id string) (*models.File, io.ReadCloser, error) {
	f, err := s.files.GetByID(ctx, id)
	if err != nil {
		return nil, nil, oops.Code("FILE_OPEN_FAILED").With("file_id", id).Wrap(err)
	}
	if f == nil {
		return nil, nil, ErrNotFound
	}
	rc, err := s.blobs.Get(ctx, f.StorageKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, oops.Code("FILE_OPEN_FAILED").With("file_id", id).Wrap(err)
	}
	return f, rc, nil
}
