package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UploadHandler stores product images on the local filesystem and serves
// them back under /uploads.
type UploadHandler struct {
	uploadDir string
	baseURL   string
}

func NewUploadHandler(uploadDir, baseURL string) *UploadHandler {
	return &UploadHandler{
		uploadDir: uploadDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Upload handles POST /api/upload (admin). The multipart field is named
// "file"; the stored name is randomized, keeping the original extension.
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Aucun fichier")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Aucun fichier")
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return respondError(c, http.StatusInternalServerError, "internal server error")
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "internal server error")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return respondError(c, http.StatusInternalServerError, "internal server error")
	}

	return respondData(c, http.StatusOK, map[string]string{
		"url": fmt.Sprintf("%s/uploads/%s", h.baseURL, name),
	})
}
