package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/comment/model"
	"bookcatalog-backend/internal/domains/comment/repository"
	"bookcatalog-backend/internal/shared/apperr"
)

type ServiceInterface interface {
	AddComment(ctx context.Context, req model.CreateCommentRequest) (*model.Comment, error)
	GetAllComments(ctx context.Context, ref model.BookRef) ([]model.Comment, error)
}

// CommentService - không kiểm tra book có tồn tại hay không
type CommentService struct {
	repo repository.RepositoryInterface
	now  func() time.Time
}

func NewService(repo repository.RepositoryInterface) *CommentService {
	return &CommentService{repo: repo, now: time.Now}
}

var _ ServiceInterface = (*CommentService)(nil)

func (s *CommentService) AddComment(ctx context.Context, req model.CreateCommentRequest) (*model.Comment, error) {
	if err := apperr.Validation(req.Validate()); err != nil {
		return nil, err
	}

	c := &model.Comment{
		ID:        uuid.New(),
		BookID:    uuid.MustParse(req.BookID),
		Comment:   req.Comment,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return c, nil
}

func (s *CommentService) GetAllComments(ctx context.Context, ref model.BookRef) ([]model.Comment, error) {
	if err := apperr.Validation(ref.Validate()); err != nil {
		return nil, err
	}

	comments, err := s.repo.FindByBookID(ctx, ref.ParsedBookID())
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
