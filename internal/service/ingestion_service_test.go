package service

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "nestcloud/internal/errors"
	"nestcloud/internal/model"
	"nestcloud/internal/storage"
)

// MockFileRepository is a mock implementation of FileRepository.
type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) Create(ctx context.Context, file *model.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockFileRepository) FindByID(ctx context.Context, id uint) (*model.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileRepository) ListByUser(ctx context.Context, userID uint) ([]model.File, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileRepository) UpdateDisplayName(ctx context.Context, id uint, displayName string) error {
	args := m.Called(ctx, id, displayName)
	return args.Error(0)
}

func (m *MockFileRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// failingReader always errors, simulating a broken upload stream.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("stream broke")
}

func newTestStore(t *testing.T) *storage.DiskStore {
	t.Helper()
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestIngestionService_Ingest_Document(t *testing.T) {
	store := newTestStore(t)
	fileRepo := new(MockFileRepository)
	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.File")).Return(nil)

	svc := NewIngestionService(fileRepo, store)

	content := "hello world"
	file, err := svc.Ingest(context.Background(), strings.NewReader(content), "notes.txt", 5)
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", file.DisplayName)
	assert.True(t, strings.HasSuffix(file.StoredName, "_notes.txt"))
	assert.Equal(t, uint(5), file.UserID)
	assert.Equal(t, "11.0 B", file.Size)
	assert.False(t, file.UploadedAt.IsZero())
	require.NotNil(t, file.Preview)
	assert.Equal(t, "file_icons/document.png", *file.Preview)

	// Round-trip: the stored bytes match the upload.
	data, err := os.ReadFile(store.FilePath(5, file.StoredName))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	fileRepo.AssertExpectations(t)
}

func TestIngestionService_Ingest_UnknownTypeGetsOtherIcon(t *testing.T) {
	store := newTestStore(t)
	fileRepo := new(MockFileRepository)
	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.File")).Return(nil)

	svc := NewIngestionService(fileRepo, store)

	file, err := svc.Ingest(context.Background(), strings.NewReader("data"), "blob.xyz", 5)
	require.NoError(t, err)
	require.NotNil(t, file.Preview)
	assert.Equal(t, "file_icons/other.png", *file.Preview)
}

func TestIngestionService_Ingest_CorruptImageHasNoPreview(t *testing.T) {
	store := newTestStore(t)
	fileRepo := new(MockFileRepository)
	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.File")).Return(nil)

	svc := NewIngestionService(fileRepo, store)

	// Image by extension, garbage by content: ingestion must still succeed.
	file, err := svc.Ingest(context.Background(), strings.NewReader("not a png"), "broken.png", 5)
	require.NoError(t, err)
	assert.Nil(t, file.Preview)
	assert.True(t, store.Exists(5, file.StoredName))

	fileRepo.AssertExpectations(t)
}

func TestIngestionService_Ingest_WriteFailureSkipsInsert(t *testing.T) {
	store := newTestStore(t)
	fileRepo := new(MockFileRepository)

	svc := NewIngestionService(fileRepo, store)

	_, err := svc.Ingest(context.Background(), failingReader{}, "doomed.txt", 5)
	assert.ErrorIs(t, err, apperrors.ErrStorageWrite)

	fileRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngestionService_Ingest_InsertFailurePropagates(t *testing.T) {
	store := newTestStore(t)
	fileRepo := new(MockFileRepository)
	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.File")).Return(errors.New("db down"))

	svc := NewIngestionService(fileRepo, store)

	_, err := svc.Ingest(context.Background(), strings.NewReader("x"), "notes.txt", 5)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrStorageWrite)
}

func TestIngestionService_Ingest_EmptyFile(t *testing.T) {
	store := newTestStore(t)
	fileRepo := new(MockFileRepository)
	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.File")).Return(nil)

	svc := NewIngestionService(fileRepo, store)

	file, err := svc.Ingest(context.Background(), io.LimitReader(strings.NewReader(""), 0), "empty.txt", 5)
	require.NoError(t, err)
	assert.Equal(t, "0 B", file.Size)
}
