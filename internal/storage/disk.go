package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// PreviewDir is the subdirectory of a user's storage directory that holds
// generated thumbnails.
const PreviewDir = "previews"

// DiskStore lays files out as <root>/<userID>/<storedName>, with generated
// previews under <root>/<userID>/previews. Concurrent uploads never collide
// because stored names carry a per-upload random token; no locking is done
// here.
type DiskStore struct {
	root string
}

// NewDiskStore creates the storage root if needed and returns a store over it.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Root returns the storage root directory.
func (s *DiskStore) Root() string {
	return s.root
}

// UserDir returns the directory that holds a user's files.
func (s *DiskStore) UserDir(userID uint) string {
	return filepath.Join(s.root, strconv.FormatUint(uint64(userID), 10))
}

// EnsureUserDir creates the user's directory if absent and returns its path.
func (s *DiskStore) EnsureUserDir(userID uint) (string, error) {
	dir := s.UserDir(userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create user directory: %w", err)
	}
	return dir, nil
}

// FilePath returns the on-disk path of a stored file.
func (s *DiskStore) FilePath(userID uint, storedName string) string {
	return filepath.Join(s.UserDir(userID), storedName)
}

// Save writes the stream to the user's directory under storedName and
// returns the number of bytes written. A partially written file is removed
// on failure.
func (s *DiskStore) Save(ctx context.Context, userID uint, storedName string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if _, err := s.EnsureUserDir(userID); err != nil {
		return 0, err
	}

	path := s.FilePath(userID, storedName)
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("write file: %w", err)
	}
	return n, nil
}

// Open opens a stored file for reading.
func (s *DiskStore) Open(userID uint, storedName string) (*os.File, error) {
	return os.Open(s.FilePath(userID, storedName))
}

// Exists reports whether a stored file is present on disk.
func (s *DiskStore) Exists(userID uint, storedName string) bool {
	_, err := os.Stat(s.FilePath(userID, storedName))
	return err == nil
}

// Remove deletes a file under the user's directory. An already-missing file
// is not an error.
func (s *DiskStore) Remove(userID uint, relPath string) error {
	err := os.Remove(filepath.Join(s.UserDir(userID), relPath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
