package repository

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"file_vault/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var fileCols = []string{"id", "filename", "content_type", "size_bytes", "storage_key", "uploaded_by", "created_at"}

func TestFileRepository_CreateAndGet(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewFileRepository(db)

	at := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	f := models.File{
		ID: "f-1", Filename: "report.pdf", ContentType: "application/pdf",
		SizeBytes: 1024, StorageKey: "files/2025/2/1/f-1", UploadedBy: 1, CreatedAt: at,
	}

	mock.ExpectExec(regexp.QuoteMeta(insertFileSQL)).
		WithArgs("f-1", "report.pdf", "application/pdf", int64(1024), "files/2025/2/1/f-1", int64(1), at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectFileSQL)).
		WithArgs("f-1").
		WillReturnRows(sqlmock.NewRows(fileCols).
			AddRow("f-1", "report.pdf", "application/pdf", 1024, "files/2025/2/1/f-1", 1, at))
	mock.ExpectQuery(regexp.QuoteMeta(selectFileSQL)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(fileCols))

	if err := repo.Create(context.Background(), f); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(context.Background(), "f-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || *got != f {
		t.Fatalf("unexpected file: %+v", got)
	}
	got, err = repo.GetByID(context.Background(), "missing")
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil), got (%+v, %v)", got, err)
	}
}

func TestFileRepository_List(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewFileRepository(db)

	at := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(listFilesSQL)).
		WillReturnRows(sqlmock.NewRows(fileCols).
			AddRow("b", "b.txt", "text/plain", 2, "k/b", 1, at.Add(time.Minute)).
			AddRow("a", "a.txt", "text/plain", 1, "k/a", 1, at))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].StorageKey != "k/a" {
		t.Fatalf("unexpected files: %+v", got)
	}
}

func TestFileRepository_Delete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewFileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(deleteFileSQL)).WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteFileSQL)).WithArgs("b").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteFileSQL)).WithArgs("c").WillReturnError(errors.New("locked"))

	if err := repo.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("Delete a: %v", err)
	}
	if err := repo.Delete(context.Background(), "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), "c"); err == nil || !strings.Contains(err.Error(), "locked") {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestBlobRepository_PutGetDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBlobRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(insertBlobSQL)).
		WithArgs("k1", "text/plain", []byte("hello")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectBlobSQL)).
		WithArgs("k1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte("hello")))
	mock.ExpectQuery(regexp.QuoteMeta(selectBlobSQL)).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))
	mock.ExpectExec(regexp.QuoteMeta(deleteBlobSQL)).
		WithArgs("k1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	if err := repo.Put(ctx, "k1", strings.NewReader("hello"), 5, "text/plain"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rc, err := repo.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(b) != "hello" {
		t.Fatalf("unexpected blob: %q", b)
	}
	if _, err := repo.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
