package models

import "time"

// File is the catalog entry of an uploaded blob.
type File struct {
	ID          string    `json:"id" db:"id"`
	Filename    string    `json:"filename" db:"filename"`
	ContentType string    `json:"content_type" db:"content_type"`
	SizeBytes   int64     `json:"size_bytes" db:"size_bytes"`
	StorageKey  string    `json:"-" db:"storage_key"`
	UploadedBy  int64     `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
