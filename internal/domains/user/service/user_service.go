package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/user"
	"bookcatalog-backend/internal/shared/apperr"
	"bookcatalog-backend/internal/shared/utils"
	"bookcatalog-backend/pkg/hasher"
	"bookcatalog-backend/pkg/jwt"
)

// TokenIssuer - phần của jwt.Manager mà service cần
type TokenIssuer interface {
	Issue(payload jwt.Payload) (string, error)
}

// userService implement user.Service interface
type userService struct {
	repo   user.Repository
	hasher hasher.Hasher
	tokens TokenIssuer
	now    func() time.Time

	// hash giả để signin với email không tồn tại vẫn tốn một lần bcrypt
	dummyOnce sync.Once
	dummyHash string
}

// NewUserService tạo service instance
func NewUserService(repo user.Repository, h hasher.Hasher, tokens TokenIssuer) user.Service {
	return &userService{
		repo:   repo,
		hasher: h,
		tokens: tokens,
		now:    time.Now,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Signup(ctx context.Context, req user.SignupRequest) (*user.PublicUser, error) {
	req.Email = user.NormalizeEmail(req.Email)
	if err := apperr.Validation(req.Validate()); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}

	// Email trùng do store quyết định (unique index), không check-then-insert
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Msg("User signed up")

	public := u.ToPublic()
	return &public, nil
}

func (s *userService) Signin(ctx context.Context, req user.SigninRequest) (*user.SigninResponse, error) {
	req.Email = user.NormalizeEmail(req.Email)
	if err := apperr.Validation(req.Validate()); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			_ = s.hasher.Compare(s.fallbackHash(), req.Password)
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, req.Password); err != nil {
		log.Debug().Str("user_id", u.ID.String()).Msg("Signin rejected: wrong password")
		return nil, user.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(jwt.Payload{
		Sub:       u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &user.SigninResponse{AccessToken: token}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, id string) (*user.PublicUser, error) {
	userID, err := utils.RequireID(id, user.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	public := u.ToPublic()
	return &public, nil
}

func (s *userService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			log.Warn().Err(err).Msg("Could not build fallback password hash")
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
