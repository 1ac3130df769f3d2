package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/infrastructure/database"
)

const bookColumns = `id, title, author, pages, created_at, updated_at`

type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (id, title, author, pages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Pages,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// FindAll - thứ tự insert (seq)
func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY seq`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	b, err := scanBook(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("get book %s: %w", id, err)
	}
	return b, nil
}

// Update - merge atomic trong một statement, field NULL giữ nguyên giá trị cũ
func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch model.UpdateBookRequest) (*model.Book, error) {
	query := `
		UPDATE books SET
			title      = COALESCE($2::text, title),
			author     = COALESCE($3::text, author),
			pages      = COALESCE($4::int, pages),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bookColumns

	b, err := scanBook(r.db.QueryRow(ctx, query, id, patch.Title, patch.Author, patch.Pages))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("update book %s: %w", id, err)
	}
	return b, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Pages,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
