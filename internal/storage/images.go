package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ModelsDir is the fixed subdirectory model images are stored under.
const ModelsDir = "models"

// ImageStore writes uploaded images under <root>/images/<subdir>/ and hands
// back the public reference path stored in the database. Filenames are
// random UUIDs plus the original extension, so concurrent uploads cannot
// collide.
type ImageStore struct {
	root string
}

// NewImageStore creates an image store rooted at the public asset directory.
func NewImageStore(root string) *ImageStore {
	return &ImageStore{root: root}
}

// Save streams the uploaded file to disk, creating the destination
// directory on demand, and returns the public path ("/images/<subdir>/<name>").
func (s *ImageStore) Save(subdir, originalFilename string, src io.Reader) (string, error) {
	dir := filepath.Join(s.root, "images", subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := uuid.New().String() + filepath.Ext(originalFilename)

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return "/images/" + subdir + "/" + filename, nil
}
