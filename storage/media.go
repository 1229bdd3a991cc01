package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MediaStorage writes uploaded files under the media root and hands back
// the relative path stored on the entity. Serving is left to the static
// file route.
type MediaStorage struct {
	Root string
}

func NewMediaStorage(root string) *MediaStorage {
	return &MediaStorage{Root: root}
}

// Save stores an upload under root/subdir with a uuid-prefixed filename
// so concurrent uploads of same-named files never collide.
func (m *MediaStorage) Save(file *multipart.FileHeader, subdir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + "_" + filepath.Base(file.Filename)
	relPath := filepath.Join(subdir, name)
	fullPath := filepath.Join(m.Root, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return relPath, nil
}
