// Package media stores product photo blobs on the local filesystem.
// Handles are paths relative to the uploads root, so they can be kept in
// the database and served or resolved later.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// PhotoDir is the subdirectory for order product photos under the root.
const PhotoDir = "order_product_photos"

// Store is a filesystem-backed blob store rooted at a configured directory.
type Store struct {
	root string
}

// NewStore creates a Store and makes sure the photo directory exists.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, PhotoDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Save writes a new blob and returns its handle. The stored name is
// prefixed with a UUID so concurrent uploads never collide.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	handle := filepath.Join(PhotoDir, uuid.New().String()+"_"+filepath.Base(filename))
	f, err := os.Create(filepath.Join(s.root, handle))
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	return handle, nil
}

// Path resolves a handle to an absolute filesystem path.
func (s *Store) Path(handle string) string {
	return filepath.Join(s.root, handle)
}

// Delete removes a blob. Deleting a handle that no longer exists is not an
// error, so deletes stay idempotent.
func (s *Store) Delete(handle string) error {
	if handle == "" {
		return nil
	}
	if err := os.Remove(s.Path(handle)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %s: %w", handle, err)
	}
	return nil
}
