package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/book/model"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	now := time.Now().UTC()
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for i, id := range ids {
		require.NoError(t, repo.Create(ctx, &model.Book{ID: id, Title: []string{"One", "Two", "Three"}[i], CreatedAt: now, UpdatedAt: now}))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, b := range all {
		assert.Equal(t, ids[i], b.ID, "insertion order")
	}

	pages := 42
	updated, err := repo.Update(ctx, ids[1], model.UpdateBookRequest{Pages: &pages})
	require.NoError(t, err)
	assert.Equal(t, "Two", updated.Title)
	assert.Equal(t, 42, *updated.Pages)

	require.NoError(t, repo.Delete(ctx, ids[0]))
	assert.ErrorIs(t, repo.Delete(ctx, ids[0]), model.ErrBookNotFound)

	_, err = repo.FindByID(ctx, ids[0])
	assert.ErrorIs(t, err, model.ErrBookNotFound)

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, ids[1], all[0].ID)
	assert.Equal(t, ids[2], all[1].ID)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	id := uuid.New()
	require.NoError(t, repo.Create(ctx, &model.Book{ID: id, Title: "Original"}))

	b, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	b.Title = "Mutated"

	again, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Title)
}
