package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/user"
	"bookcatalog-backend/internal/infrastructure/database"
)

const emailUniqueConstraint = "users_email_key"

// postgresRepository implement user.Repository
type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) user.Repository {
	return &postgresRepository{db: db}
}

// Create - unique constraint trên email là nguồn sự thật duy nhất cho Conflict
func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, first_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		u.ID,
		u.Email,
		u.FirstName,
		u.PasswordHash,
		u.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, emailUniqueConstraint) {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, email, first_name, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	return r.findOne(ctx, query, id)
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, email, first_name, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	return r.findOne(ctx, query, email)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
