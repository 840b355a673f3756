package storage

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"yammiverse-backend/domain"
	"yammiverse-backend/internal/utils"
)

const MaxUploadSize = 5 * 1024 * 1024

// AllowImage lists the extensions accepted for recipe covers and avatars.
var AllowImage = []string{".jpg", ".jpeg", ".png", ".webp"}

type (
	// FileStorage stores an uploaded file under a folder and returns an object
	// key that GetPublicLinkKey resolves to a fully-qualified URL.
	FileStorage interface {
		UploadFile(name string, file *multipart.FileHeader, folder string, allowedExt ...string) (string, error)
		GetPublicLinkKey(objectKey string) string
	}
)

// NewFileStorage picks the backend from STORAGE_DRIVER. Local disk is the
// default; "s3" switches to the bucket configured via the AWS_* keys.
func NewFileStorage() FileStorage {
	if utils.GetConfig("STORAGE_DRIVER") == "s3" {
		return NewAwsS3()
	}
	return NewLocalStorage()
}

func validateUpload(file *multipart.FileHeader, allowedExt []string) (string, error) {
	if file.Size > MaxUploadSize {
		return "", domain.ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowed := range allowedExt {
		if ext == allowed {
			return ext, nil
		}
	}
	return "", domain.ErrUnsupportedImageType
}
