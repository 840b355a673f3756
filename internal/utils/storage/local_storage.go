package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"yammiverse-backend/internal/utils"
)

type localStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage stores uploads under UPLOADS_DIR (default ./public/uploads),
// which the app serves statically at /uploads.
func NewLocalStorage() FileStorage {
	baseDir := utils.GetConfig("UPLOADS_DIR")
	if baseDir == "" {
		baseDir = "./public/uploads"
	}
	return &localStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(utils.GetConfig("APP_URL"), "/"),
	}
}

func (l *localStorage) UploadFile(name string, file *multipart.FileHeader, folder string, allowedExt ...string) (string, error) {
	ext, err := validateUpload(file, allowedExt)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(l.baseDir, folder)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectKey := fmt.Sprintf("%s/%s%s", folder, name, ext)
	dst, err := os.Create(filepath.Join(l.baseDir, folder, name+ext))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return objectKey, nil
}

func (l *localStorage) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("%s/uploads/%s", l.baseURL, objectKey)
}
