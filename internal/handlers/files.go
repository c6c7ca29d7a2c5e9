package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"file_vault/internal/models"
	"file_vault/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	formFileField = "file"

	// multipart framing allowance on top of the file size limit
	multipartOverhead = 1 << 20
)

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	Message string      `json:"message" example:"File added"`
	File    models.File `json:"file"`
}

// @Summary      List files
// @Tags         files
// @Produce      json
// @Success      200  {array}   models.File
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/files [get]
// @Security     BearerAuth
func (h *Handler) listFiles(c *gin.Context) {
	files, err := h.services.ListFiles(c.Request.Context())
	if err != nil {
		h.serviceError(c, "files_list_failed", err)
		return
	}
	if files == nil {
		files = []models.File{}
	}
	c.JSON(http.StatusOK, files)
}

// @Summary      Upload a file
// @Description  Admin only. Multipart field "file".
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File content"
// @Success      201   {object}  UploadResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/files [post]
// @Security     BearerAuth
func (h *Handler) uploadFile(c *gin.Context) {
	limit := h.services.MaxUploadBytes()
	tooLarge := fmt.Sprintf("File size exceeds %dMB limit", limit>>20)

	if c.Request.ContentLength > limit+multipartOverhead {
		c.JSON(http.StatusBadRequest, gin.H{"error": tooLarge})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	fh, err := c.FormFile(formFileField)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": tooLarge})
		case errors.Is(err, http.ErrMissingFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		default:
			h.logAndJSONError(c, http.StatusBadRequest, "invalid multipart body", "files_upload_bad_body", err)
		}
		return
	}
	if fh.Size > limit {
		c.JSON(http.StatusBadRequest, gin.H{"error": tooLarge})
		return
	}

	src, err := fh.Open()
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, msgInternal, "files_upload_open_failed", err, "filename", fh.Filename)
		return
	}
	defer func() { _ = src.Close() }()

	actor, _ := identity(c)
	f, err := h.services.UploadFile(c.Request.Context(), actor, service.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        src,
	})
	if err != nil {
		if errors.Is(err, service.ErrFileTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": tooLarge})
			return
		}
		h.serviceError(c, "files_upload_failed", err, "filename", fh.Filename)
		return
	}

	c.JSON(http.StatusCreated, UploadResponse{Message: "File added", File: *f})
}

// @Summary      Remove a file
// @Tags         files
// @Produce      json
// @Param        id   path      string  true  "File id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/files/{id} [delete]
// @Security     BearerAuth
func (h *Handler) removeFile(c *gin.Context) {
	id := c.Param("id")
	actor, _ := identity(c)
	if err := h.services.RemoveFile(c.Request.Context(), actor, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgFileNotFound})
			return
		}
		h.serviceError(c, "files_remove_failed", err, "file_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File removed"})
}

// @Summary      Download a file
// @Tags         files
// @Produce      octet-stream
// @Param        id   path      string  true  "File id"
// @Success      200  {file}    binary
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/files/{id}/download [get]
// @Security     BearerAuth
func (h *Handler) downloadFile(c *gin.Context) {
	id := c.Param("id")
	f, body, err := h.services.OpenFile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgFileNotFound})
			return
		}
		h.serviceError(c, "files_download_failed", err, "file_id", id)
		return
	}
	defer func() { _ = body.Close() }()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": f.Filename})
	c.DataFromReader(http.StatusOK, f.SizeBytes, f.ContentType, body, map[string]string{
		"Content-Disposition": disposition,
	})
}
