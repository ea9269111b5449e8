package service

import (
	"context"
	"strings"

	"haven/internal/middleware"
	"haven/internal/models"
	"haven/internal/repository"
)

// CreateBoardInput is the payload for creating a condition board.
type CreateBoardInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BoardService manages condition boards.
type BoardService struct {
	boardRepo repository.BoardRepository
}

// NewBoardService returns a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository) *BoardService {
	return &BoardService{boardRepo: boardRepo}
}

// ListBoards returns all boards.
func (s *BoardService) ListBoards(ctx context.Context) ([]models.ConditionBoard, error) {
	return s.boardRepo.List(ctx)
}

// CreateBoard creates a board with a unique name.
// Name uniqueness is read-then-write; concurrent creates of the same name
// fall through to the unique index.
func (s *BoardService) CreateBoard(ctx context.Context, in CreateBoardInput) (*models.ConditionBoard, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Board name is required")
	}

	existing, err := s.boardRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Board name already exists")
	}

	board := &models.ConditionBoard{Name: name, Description: in.Description}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "board created", "board_id", board.ID, "name", board.Name)
	return board, nil
}
