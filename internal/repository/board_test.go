package repository

import (
	"context"
	"testing"

	"haven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRepositoryCreateAndList(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.ConditionBoard{Name: "Chronic Pain", Description: "Support for chronic pain"}))
	require.NoError(t, repo.Create(ctx, &models.ConditionBoard{Name: "Asthma & COPD"}))

	boards, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	// Ordered by name
	assert.Equal(t, "Asthma & COPD", boards[0].Name)
	assert.Equal(t, "Chronic Pain", boards[1].Name)
}

func TestBoardRepositoryDuplicateName(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.ConditionBoard{Name: "Diabetes"}))

	err := repo.Create(ctx, &models.ConditionBoard{Name: "Diabetes"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestBoardRepositoryGetByName(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.ConditionBoard{Name: "Mental Health"}))

	got, err := repo.GetByName(ctx, "Mental Health")
	require.NoError(t, err)
	require.NotNil(t, got)

	missing, err := repo.GetByName(ctx, "Unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBoardRepositoryGetByIDNotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewBoardRepository(db)

	_, err := repo.GetByID(context.Background(), 404)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
