package repository

import (
	"context"

	"gorm.io/gorm"

	"nestcloud/internal/model"
)

// FileRepository defines file metadata persistence operations.
type FileRepository interface {
	Create(ctx context.Context, file *model.File) error
	FindByID(ctx context.Context, id uint) (*model.File, error)
	ListByUser(ctx context.Context, userID uint) ([]model.File, error)
	UpdateDisplayName(ctx context.Context, id uint, displayName string) error
	Delete(ctx context.Context, id uint) error
}

type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository builds a GORM-backed repository.
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *model.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileRepository) FindByID(ctx context.Context, id uint) (*model.File, error) {
	var file model.File
	if err := r.db.WithContext(ctx).First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// ListByUser returns the user's files, newest upload first.
func (r *fileRepository) ListByUser(ctx context.Context, userID uint) ([]model.File, error) {
	var files []model.File
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// UpdateDisplayName changes the user-facing name only. The stored name is
// immutable once set.
func (r *fileRepository) UpdateDisplayName(ctx context.Context, id uint, displayName string) error {
	return r.db.WithContext(ctx).Model(&model.File{}).
		Where("id = ?", id).
		Update("display_name", displayName).Error
}

func (r *fileRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.File{}, id).Error
}
