package service

import (
	"context"
	"testing"

	"haven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMessage(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewMessagingService(db, NewCrisisService(db))
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", models.RoleUser)

	post, err := svc.PostMessage(ctx, author, PostMessageInput{Content: "hello everyone"})
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusActive, post.Status)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Nil(t, post.BoardID)
}

func TestPostMessageBannedUser(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewMessagingService(db, NewCrisisService(db))
	ctx := context.Background()

	banned := createTestUser(t, db, "banned@example.com", models.RoleUser)
	require.NoError(t, db.Model(banned).Update("is_banned", true).Error)
	banned.IsBanned = true

	_, err := svc.PostMessage(ctx, banned, PostMessageInput{Content: "let me back in"})
	assertAppErrorCode(t, err, "FORBIDDEN")

	// No row created
	var n int64
	db.Model(&models.Post{}).Count(&n)
	assert.Zero(t, n)
}

func TestPostMessageValidation(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewMessagingService(db, NewCrisisService(db))
	ctx := context.Background()
	author := createTestUser(t, db, "author@example.com", models.RoleUser)

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.PostMessage(ctx, author, PostMessageInput{Content: "   "})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("unknown board", func(t *testing.T) {
		boardID := uint(999)
		_, err := svc.PostMessage(ctx, author, PostMessageInput{BoardID: &boardID, Content: "hi"})
		assertAppErrorCode(t, err, "NOT_FOUND")
	})
}

func TestPostMessageKeywordEscalation(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewMessagingService(db, NewCrisisService(db))
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", models.RoleUser)

	post, err := svc.PostMessage(ctx, author, PostMessageInput{Content: "I just want to end it all"})
	require.NoError(t, err)

	var tickets []models.CrisisTicket
	require.NoError(t, db.Find(&tickets).Error)
	require.Len(t, tickets, 1)
	require.NotNil(t, tickets[0].UserID)
	assert.Equal(t, author.ID, *tickets[0].UserID)

	var report models.Report
	require.NoError(t, db.Where("is_crisis = ?", true).First(&report).Error)
	require.NotNil(t, report.PostID)
	assert.Equal(t, post.ID, *report.PostID)
	// System-created: no human reporter
	assert.Nil(t, report.ReportingUserID)

	// Audit actor is nil for system-triggered escalation
	var entry models.AuditLogEntry
	require.NoError(t, db.Where("action_type = ?", models.AuditCrisisEscalation).First(&entry).Error)
	assert.Nil(t, entry.ActorID)
}

func TestPostMessageBenignContentNoEscalation(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewMessagingService(db, NewCrisisService(db))
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", models.RoleUser)
	_, err := svc.PostMessage(ctx, author, PostMessageInput{Content: "the support group helped a lot"})
	require.NoError(t, err)

	var n int64
	db.Model(&models.CrisisTicket{}).Count(&n)
	assert.Zero(t, n)
}

func TestListPosts(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewMessagingService(db, NewCrisisService(db))
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", models.RoleUser)
	board := models.ConditionBoard{Name: "Diabetes"}
	require.NoError(t, db.Create(&board).Error)

	_, err := svc.PostMessage(ctx, author, PostMessageInput{Content: "general post"})
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, author, PostMessageInput{BoardID: &board.ID, Content: "board post"})
	require.NoError(t, err)

	deleted, err := svc.PostMessage(ctx, author, PostMessageInput{Content: "soon gone"})
	require.NoError(t, err)
	_, err = svc.DeletePostSelf(ctx, author, deleted.ID)
	require.NoError(t, err)

	all, err := svc.ListPosts(ctx, nil, 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	boardOnly, err := svc.ListPosts(ctx, &board.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, boardOnly, 1)
	assert.Equal(t, "board post", boardOnly[0].Content)
}

func TestDeletePostSelf(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewMessagingService(db, NewCrisisService(db))
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", models.RoleUser)
	other := createTestUser(t, db, "other@example.com", models.RoleUser)
	post := createTestPost(t, db, author, "mine")

	t.Run("not the author", func(t *testing.T) {
		_, err := svc.DeletePostSelf(ctx, other, post.ID)
		assertAppErrorCode(t, err, "FORBIDDEN")
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := svc.DeletePostSelf(ctx, author, 9999)
		assertAppErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("deletes own post without audit entry", func(t *testing.T) {
		before := countAuditEntries(t, db)
		deleted, err := svc.DeletePostSelf(ctx, author, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusDeleted, deleted.Status)
		assert.Equal(t, before, countAuditEntries(t, db))
	})

	t.Run("already deleted", func(t *testing.T) {
		_, err := svc.DeletePostSelf(ctx, author, post.ID)
		assertAppErrorCode(t, err, "INVALID_STATE")
	})
}
