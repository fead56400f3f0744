package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	apperrors "nestcloud/internal/errors"
	"nestcloud/internal/model"
	"nestcloud/internal/preview"
	"nestcloud/internal/repository"
	"nestcloud/internal/storage"
)

// forbiddenNameChars are rejected in user-supplied display names. Parent
// references ("..") are rejected separately.
const forbiddenNameChars = "/\\<>:\"|?*"

// FileService authorizes and resolves file records for download, preview,
// rename and deletion.
type FileService interface {
	List(ctx context.Context, ownerID uint) ([]model.File, error)
	Download(ctx context.Context, ownerID, fileID uint) (*model.File, string, error)
	Preview(ctx context.Context, ownerID, fileID uint) (string, error)
	Rename(ctx context.Context, ownerID, fileID uint, newName string) (*model.File, error)
	Delete(ctx context.Context, ownerID, fileID uint) error
}

type fileService struct {
	fileRepo repository.FileRepository
	store    *storage.DiskStore
	iconDir  string
}

// NewFileService creates a new file service. iconDir is the shared read-only
// directory holding the static category icons.
func NewFileService(fileRepo repository.FileRepository, store *storage.DiskStore, iconDir string) FileService {
	return &fileService{
		fileRepo: fileRepo,
		store:    store,
		iconDir:  iconDir,
	}
}

// findOwned fetches a record and enforces that ownerID owns it.
func (s *fileService) findOwned(ctx context.Context, ownerID, fileID uint) (*model.File, error) {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}
	if file.UserID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return file, nil
}

// List returns the owner's files, newest upload first.
func (s *fileService) List(ctx context.Context, ownerID uint) ([]model.File, error) {
	return s.fileRepo.ListByUser(ctx, ownerID)
}

// Download resolves a record to its on-disk path after verifying ownership
// and that the stored file still exists.
func (s *fileService) Download(ctx context.Context, ownerID, fileID uint) (*model.File, string, error) {
	file, err := s.findOwned(ctx, ownerID, fileID)
	if err != nil {
		return nil, "", err
	}
	if !s.store.Exists(ownerID, file.StoredName) {
		return nil, "", apperrors.ErrFileNotFound
	}
	return file, s.store.FilePath(ownerID, file.StoredName), nil
}

// Preview resolves a record's preview reference to an on-disk path. Static
// icon references resolve against the shared icon directory; generated
// thumbnails resolve under the owner's directory and must exist.
func (s *fileService) Preview(ctx context.Context, ownerID, fileID uint) (string, error) {
	file, err := s.findOwned(ctx, ownerID, fileID)
	if err != nil {
		return "", err
	}
	if file.Preview == nil {
		return "", apperrors.ErrPreviewNotFound
	}

	ref := *file.Preview
	if preview.IsIconRef(ref) {
		return filepath.Join(s.iconDir, strings.TrimPrefix(ref, preview.IconPrefix)), nil
	}

	path := filepath.Join(s.store.UserDir(ownerID), filepath.FromSlash(ref))
	if _, err := os.Stat(path); err != nil {
		return "", apperrors.ErrPreviewNotFound
	}
	return path, nil
}

// Rename updates the display name only. The client-supplied extension is
// discarded and the original file's extension re-appended, so the extension
// is never user-controlled. The stored name never changes.
func (s *fileService) Rename(ctx context.Context, ownerID, fileID uint, newName string) (*model.File, error) {
	file, err := s.findOwned(ctx, ownerID, fileID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(newName)
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty", apperrors.ErrInvalidFileName)
	}
	if strings.ContainsAny(name, forbiddenNameChars) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("%w: name contains forbidden characters", apperrors.ErrInvalidFileName)
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		return nil, fmt.Errorf("%w: name is empty", apperrors.ErrInvalidFileName)
	}
	displayName := base + filepath.Ext(file.DisplayName)

	if err := s.fileRepo.UpdateDisplayName(ctx, fileID, displayName); err != nil {
		return nil, fmt.Errorf("update display name: %w", err)
	}

	file.DisplayName = displayName
	return file, nil
}

// Delete removes the stored file and any generated thumbnail from disk, then
// deletes the metadata row. Disk removals are best-effort: already-missing
// files are tolerated and removal errors do not keep the row alive.
func (s *fileService) Delete(ctx context.Context, ownerID, fileID uint) error {
	file, err := s.findOwned(ctx, ownerID, fileID)
	if err != nil {
		return err
	}

	if err := s.store.Remove(ownerID, file.StoredName); err != nil {
		log.Printf("remove stored file %q: %v", file.StoredName, err)
	}
	if file.Preview != nil && !preview.IsIconRef(*file.Preview) {
		if err := s.store.Remove(ownerID, filepath.FromSlash(*file.Preview)); err != nil {
			log.Printf("remove preview %q: %v", *file.Preview, err)
		}
	}

	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("delete file record: %w", err)
	}
	return nil
}
