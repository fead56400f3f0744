package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nestcloud/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// One named in-memory database per test so pooled connections share
	// state without leaking rows between tests.
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.File{}))
	return db
}

func seedFile(t *testing.T, repo FileRepository, userID uint, name string, uploadedAt time.Time) *model.File {
	t.Helper()
	file := &model.File{
		DisplayName: name,
		StoredName:  "tok_" + name,
		UserID:      userID,
		Size:        "1.0 KB",
		UploadedAt:  uploadedAt,
	}
	require.NoError(t, repo.Create(context.Background(), file))
	return file
}

func TestFileRepository_ListByUser_NewestFirst(t *testing.T) {
	repo := NewFileRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seedFile(t, repo, 1, "oldest.txt", base)
	seedFile(t, repo, 1, "newest.txt", base.Add(2*time.Hour))
	seedFile(t, repo, 1, "middle.txt", base.Add(time.Hour))
	seedFile(t, repo, 2, "other-user.txt", base.Add(3*time.Hour))

	files, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "newest.txt", files[0].DisplayName)
	assert.Equal(t, "middle.txt", files[1].DisplayName)
	assert.Equal(t, "oldest.txt", files[2].DisplayName)
}

func TestFileRepository_UpdateDisplayName(t *testing.T) {
	repo := NewFileRepository(newTestDB(t))
	ctx := context.Background()

	file := seedFile(t, repo, 1, "draft.pdf", time.Now())

	require.NoError(t, repo.UpdateDisplayName(ctx, file.ID, "final.pdf"))

	reloaded, err := repo.FindByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "final.pdf", reloaded.DisplayName)
	assert.Equal(t, file.StoredName, reloaded.StoredName, "stored name must never change")
	assert.Equal(t, file.Size, reloaded.Size, "size is not re-derived on rename")
}

func TestFileRepository_Delete(t *testing.T) {
	repo := NewFileRepository(newTestDB(t))
	ctx := context.Background()

	file := seedFile(t, repo, 1, "victim.txt", time.Now())

	require.NoError(t, repo.Delete(ctx, file.ID))

	_, err := repo.FindByID(ctx, file.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UsernameIsCaseSensitive(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "Alice", PasswordHash: "x"}))

	found, err := repo.FindByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Username)

	_, err = repo.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
