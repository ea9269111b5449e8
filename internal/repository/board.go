package repository

import (
	"context"
	"errors"

	"haven/internal/cache"
	"haven/internal/models"
	"haven/internal/observability"

	"gorm.io/gorm"
)

// BoardRepository defines persistence operations for condition boards.
type BoardRepository interface {
	GetByID(ctx context.Context, id uint) (*models.ConditionBoard, error)
	GetByName(ctx context.Context, name string) (*models.ConditionBoard, error)
	Create(ctx context.Context, board *models.ConditionBoard) error
	List(ctx context.Context) ([]models.ConditionBoard, error)
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository returns a new BoardRepository implementation.
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) GetByID(ctx context.Context, id uint) (*models.ConditionBoard, error) {
	var board models.ConditionBoard
	key := cache.BoardKey(id)

	err := cache.CacheAside(ctx, key, &board, cache.BoardTTL, func() error {
		defer observability.TrackQuery("select", "condition_boards")()
		if err := r.db.WithContext(ctx).First(&board, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Board", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &board, nil
}

// GetByName returns (nil, nil) when no board has the given name.
func (r *boardRepository) GetByName(ctx context.Context, name string) (*models.ConditionBoard, error) {
	var board models.ConditionBoard
	defer observability.TrackQuery("select", "condition_boards")()
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &board, nil
}

func (r *boardRepository) Create(ctx context.Context, board *models.ConditionBoard) error {
	defer observability.TrackQuery("insert", "condition_boards")()
	if err := r.db.WithContext(ctx).Create(board).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Board already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateBoards(ctx)
	return nil
}

func (r *boardRepository) List(ctx context.Context) ([]models.ConditionBoard, error) {
	var boards []models.ConditionBoard

	err := cache.CacheAside(ctx, cache.BoardListKey, &boards, cache.BoardListTTL, func() error {
		defer observability.TrackQuery("select", "condition_boards")()
		if err := r.db.WithContext(ctx).Order("name ASC").Find(&boards).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return boards, nil
}
