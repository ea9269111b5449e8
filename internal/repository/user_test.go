package repository

import (
	"context"
	"testing"

	"haven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUserRepositoryCreateAndGet(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Email:        strPtr("member@example.com"),
		PasswordHash: strPtr("hashed"),
		DisplayName:  "Quiet Fox",
		Role:         models.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quiet Fox", got.DisplayName)
	assert.Equal(t, models.RoleUser, got.Role)
}

func TestUserRepositoryGetByIDNotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{
		Email:        strPtr("known@example.com"),
		PasswordHash: strPtr("hashed"),
		DisplayName:  "Known",
		Role:         models.RoleUser,
		IsActive:     true,
	}))

	got, err := repo.GetByEmail(ctx, "known@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Known", got.DisplayName)

	// Missing email yields nil without an error
	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{
		Email:        strPtr("dup@example.com"),
		PasswordHash: strPtr("hashed"),
		DisplayName:  "First",
		Role:         models.RoleUser,
		IsActive:     true,
	}))

	err := repo.Create(ctx, &models.User{
		Email:        strPtr("dup@example.com"),
		PasswordHash: strPtr("hashed"),
		DisplayName:  "Second",
		Role:         models.RoleUser,
		IsActive:     true,
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUserRepositoryUpdate(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Email:        strPtr("upd@example.com"),
		PasswordHash: strPtr("hashed"),
		DisplayName:  "Before",
		Role:         models.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(ctx, user))

	user.DisplayName = "After"
	user.IsBanned = true
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.DisplayName)
	assert.True(t, got.IsBanned)
}

func TestUserRepositoryGetByIDWithPosts(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Email:        strPtr("poster@example.com"),
		PasswordHash: strPtr("hashed"),
		DisplayName:  "Poster",
		Role:         models.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(ctx, user))

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Post{
			AuthorID: user.ID,
			Content:  "post content",
			Status:   models.PostStatusActive,
		}).Error)
	}

	got, err := repo.GetByIDWithPosts(ctx, user.ID, 2)
	require.NoError(t, err)
	assert.Len(t, got.Posts, 2)
}
