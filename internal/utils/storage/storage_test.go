package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"yammiverse-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real multipart.FileHeader backed by content, the same
// shape Fiber's FormFile hands to the services.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(2 * MaxUploadSize)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name    string
		file    *multipart.FileHeader
		wantExt string
		wantErr error
	}{
		{
			name:    "valid jpg",
			file:    &multipart.FileHeader{Filename: "cover.jpg", Size: 1024},
			wantExt: ".jpg",
		},
		{
			name:    "extension check is case-insensitive",
			file:    &multipart.FileHeader{Filename: "cover.PNG", Size: 1024},
			wantExt: ".png",
		},
		{
			name:    "exactly at the size limit",
			file:    &multipart.FileHeader{Filename: "cover.webp", Size: MaxUploadSize},
			wantExt: ".webp",
		},
		{
			name:    "oversized file",
			file:    &multipart.FileHeader{Filename: "cover.jpg", Size: MaxUploadSize + 1},
			wantErr: domain.ErrImageTooLarge,
		},
		{
			name:    "disallowed extension",
			file:    &multipart.FileHeader{Filename: "cover.gif", Size: 1024},
			wantErr: domain.ErrUnsupportedImageType,
		},
		{
			name:    "no extension",
			file:    &multipart.FileHeader{Filename: "cover", Size: 1024},
			wantErr: domain.ErrUnsupportedImageType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := validateUpload(tt.file, AllowImage)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestLocalStorageUploadRoundtrip(t *testing.T) {
	baseDir := t.TempDir()
	store := &localStorage{
		baseDir: baseDir,
		baseURL: "http://localhost:8080",
	}

	content := []byte("fake image bytes")
	file := fileHeader(t, "cover.png", content)

	objectKey, err := store.UploadFile("recipe-abc", file, "recipes", AllowImage...)
	require.NoError(t, err)
	assert.Equal(t, "recipes/recipe-abc.png", objectKey)

	written, err := os.ReadFile(filepath.Join(baseDir, "recipes", "recipe-abc.png"))
	require.NoError(t, err)
	assert.Equal(t, content, written)

	assert.Equal(t,
		"http://localhost:8080/uploads/recipes/recipe-abc.png",
		store.GetPublicLinkKey(objectKey),
	)
}

func TestLocalStorageUploadRejectsBadFiles(t *testing.T) {
	store := &localStorage{
		baseDir: t.TempDir(),
		baseURL: "http://localhost:8080",
	}

	t.Run("disallowed extension never touches disk", func(t *testing.T) {
		file := fileHeader(t, "cover.gif", []byte("gif bytes"))
		_, err := store.UploadFile("recipe-abc", file, "recipes", AllowImage...)
		assert.ErrorIs(t, err, domain.ErrUnsupportedImageType)

		_, statErr := os.Stat(filepath.Join(store.baseDir, "recipes"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("oversized file is rejected", func(t *testing.T) {
		file := fileHeader(t, "cover.jpg", []byte("jpg bytes"))
		file.Size = MaxUploadSize + 1
		_, err := store.UploadFile("recipe-abc", file, "recipes", AllowImage...)
		assert.ErrorIs(t, err, domain.ErrImageTooLarge)
	})
}
