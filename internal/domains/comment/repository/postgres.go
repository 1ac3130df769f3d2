package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/comment/model"
	"bookcatalog-backend/internal/infrastructure/database"
)

type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO book_comments (id, book_id, comment, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.Exec(ctx, query, c.ID, c.BookID, c.Comment, c.CreatedAt); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByBookID(ctx context.Context, bookID uuid.UUID) ([]model.Comment, error) {
	query := `
		SELECT id, book_id, comment, created_at
		FROM book_comments
		WHERE book_id = $1
		ORDER BY seq
	`

	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.BookID, &c.Comment, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}
