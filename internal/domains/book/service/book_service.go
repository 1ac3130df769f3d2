package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/domains/book/repository"
	"bookcatalog-backend/internal/shared/apperr"
	"bookcatalog-backend/internal/shared/utils"
	"bookcatalog-backend/pkg/cache"
)

const DefaultCacheTTL = 5 * time.Minute

// BookService - Implements ServiceInterface
type BookService struct {
	repo     repository.RepositoryInterface
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface, cache cache.Cache, cacheTTL time.Duration) *BookService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &BookService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

var _ ServiceInterface = (*BookService)(nil)

func (s *BookService) Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	if err := apperr.Validation(req.Validate()); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	book := &model.Book{
		ID:        uuid.New(),
		Title:     req.Title,
		Author:    req.Author,
		Pages:     req.Pages,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	log.Info().Str("book_id", book.ID.String()).Msg("Book created")
	return book, nil
}

func (s *BookService) FindAll(ctx context.Context) ([]model.Book, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// FindOne - cache-aside: lỗi cache chỉ log, không fail request.
// Version được đọc trước store; Update/Remove xen giữa làm SetIfVersion bỏ qua bản đọc cũ.
func (s *BookService) FindOne(ctx context.Context, id string) (*model.Book, error) {
	bookID, err := utils.RequireID(id, model.ErrBookNotFound)
	if err != nil {
		return nil, err
	}

	cacheKey := model.GenerateBookCacheKey(bookID)

	var cached model.Book
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Book cache read failed")
	}
	if found {
		return &cached, nil
	}

	version, versionErr := s.cache.Version(ctx, cacheKey)
	if versionErr != nil {
		log.Warn().Err(versionErr).Str("key", cacheKey).Msg("Book cache version read failed")
	}

	book, err := s.repo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if versionErr != nil {
		return book, nil
	}

	stored, err := s.cache.SetIfVersion(ctx, cacheKey, book, s.cacheTTL, version)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Book cache write failed")
	} else if !stored {
		log.Debug().Str("key", cacheKey).Msg("Book cache write skipped, invalidated during read")
	}
	return book, nil
}

func (s *BookService) Update(ctx context.Context, id string, req model.UpdateBookRequest) (*model.Book, error) {
	bookID, err := utils.RequireID(id, model.ErrBookNotFound)
	if err != nil {
		return nil, err
	}

	if err := apperr.Validation(req.Validate()); err != nil {
		return nil, err
	}

	book, err := s.repo.Update(ctx, bookID, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, bookID)
	return book, nil
}

func (s *BookService) Remove(ctx context.Context, id string) (*model.DeleteBookResponse, error) {
	bookID, err := utils.RequireID(id, model.ErrBookNotFound)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, bookID); err != nil {
		return nil, err
	}

	s.invalidate(ctx, bookID)
	log.Info().Str("book_id", bookID.String()).Msg("Book deleted")

	return &model.DeleteBookResponse{
		Message: model.DeleteSuccessMessage,
		ID:      bookID,
	}, nil
}

func (s *BookService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Invalidate(ctx, model.GenerateBookCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("book_id", id.String()).Msg("Book cache invalidation failed")
	}
}
