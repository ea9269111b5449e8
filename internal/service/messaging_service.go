package service

import (
	"context"
	"errors"
	"strings"

	"haven/internal/crisis"
	"haven/internal/middleware"
	"haven/internal/models"

	"gorm.io/gorm"
)

// PostMessageInput is the payload for creating a post.
type PostMessageInput struct {
	BoardID *uint  `json:"board_id"`
	Content string `json:"content"`
}

// MessagingService handles post creation and self-service deletion.
type MessagingService struct {
	db        *gorm.DB
	crisisSvc *CrisisService
}

// NewMessagingService returns a new MessagingService.
func NewMessagingService(db *gorm.DB, crisisSvc *CrisisService) *MessagingService {
	return &MessagingService{db: db, crisisSvc: crisisSvc}
}

// PostMessage creates an active post on behalf of the author. Banned users
// cannot post. Content that matches the crisis keyword list triggers an
// automatic, system-attributed escalation after the post is created; a
// failed escalation does not fail the post.
func (s *MessagingService) PostMessage(ctx context.Context, author *models.User, in PostMessageInput) (*models.Post, error) {
	if author.IsBanned {
		return nil, models.NewForbiddenError("Banned users can't post")
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Post content is required")
	}

	if in.BoardID != nil {
		var board models.ConditionBoard
		if err := s.db.WithContext(ctx).First(&board, *in.BoardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Board", *in.BoardID)
			}
			return nil, models.NewInternalError(err)
		}
	}

	post := models.Post{
		AuthorID: author.ID,
		BoardID:  in.BoardID,
		Content:  content,
		Status:   models.PostStatusActive,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if crisis.Detect(content) {
		_, err := s.crisisSvc.EscalateCrisis(ctx, nil, EscalateCrisisInput{
			UserID:         &author.ID,
			PostID:         &post.ID,
			ContentSnippet: content,
		})
		if err != nil {
			middleware.Logger.ErrorContext(ctx, "automatic crisis escalation failed",
				"post_id", post.ID, "error", err.Error())
		}
	}

	return &post, nil
}

// ListPosts returns active posts, optionally filtered by board, newest first.
func (s *MessagingService) ListPosts(ctx context.Context, boardID *uint, limit, offset int) ([]models.Post, error) {
	query := s.db.WithContext(ctx).
		Where("status = ?", models.PostStatusActive)
	if boardID != nil {
		query = query.Where("board_id = ?", *boardID)
	}

	var posts []models.Post
	if err := query.
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// DeletePostSelf lets a user delete their own post. No audit entry is
// written on this path; accountability trails are for moderator actions.
func (s *MessagingService) DeletePostSelf(ctx context.Context, user *models.User, postID uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}

	if post.AuthorID != user.ID {
		return nil, models.NewForbiddenError("You can only delete your own posts")
	}

	if post.Status == models.PostStatusDeleted {
		return nil, models.NewInvalidStateError("Post was already deleted")
	}

	post.Status = models.PostStatusDeleted
	if err := s.db.WithContext(ctx).Save(&post).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return &post, nil
}
