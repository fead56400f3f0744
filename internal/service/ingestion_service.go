package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	apperrors "nestcloud/internal/errors"
	"nestcloud/internal/model"
	"nestcloud/internal/preview"
	"nestcloud/internal/repository"
	"nestcloud/internal/storage"
)

// IngestionService coordinates saving an upload to disk, generating its
// preview and persisting the metadata record.
type IngestionService interface {
	Ingest(ctx context.Context, upload io.Reader, originalName string, ownerID uint) (*model.File, error)
}

type ingestionService struct {
	fileRepo repository.FileRepository
	store    *storage.DiskStore
}

// NewIngestionService creates a new ingestion service.
func NewIngestionService(fileRepo repository.FileRepository, store *storage.DiskStore) IngestionService {
	return &ingestionService{
		fileRepo: fileRepo,
		store:    store,
	}
}

// Ingest stores the upload under a fresh collision-resistant name, derives
// its preview reference and inserts the metadata row. A disk-write failure
// aborts before any row is inserted. Preview generation failure degrades to
// a record without a preview.
func (s *ingestionService) Ingest(ctx context.Context, upload io.Reader, originalName string, ownerID uint) (*model.File, error) {
	storedName := storage.StoredName(originalName)

	written, err := s.store.Save(ctx, ownerID, storedName, upload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageWrite, err)
	}

	var previewRef *string
	if preview.IsImage(originalName) {
		ref, err := preview.Generate(s.store.FilePath(ownerID, storedName), s.store.UserDir(ownerID), storedName)
		if err != nil {
			// Non-fatal: the file is kept, it just has no thumbnail.
			log.Printf("preview generation failed for %q: %v", originalName, err)
		} else {
			previewRef = &ref
		}
	} else {
		icon := preview.IconFor(originalName)
		previewRef = &icon
	}

	file := &model.File{
		DisplayName: originalName,
		StoredName:  storedName,
		UserID:      ownerID,
		Size:        storage.HumanSize(written),
		UploadedAt:  time.Now(),
		Preview:     previewRef,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("create file record: %w", err)
	}

	return file, nil
}
