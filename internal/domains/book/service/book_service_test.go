package service

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/domains/book/repository"
	infraCache "bookcatalog-backend/internal/infrastructure/cache"
	"bookcatalog-backend/internal/shared/apperr"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int        { return &i }

func newTestService(t *testing.T) *BookService {
	t.Helper()
	return NewService(repository.NewMemoryRepository(), infraCache.NewNoopCache(), 0)
}

func TestBookService_CleanCodeScenario(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, model.CreateBookRequest{
		Title:  "Clean Code",
		Author: strPtr("Robert C. Martin"),
		Pages:  intPtr(464),
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)

	updated, err := svc.Update(ctx, created.ID.String(), model.UpdateBookRequest{Title: strPtr("Updated Title")})
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, "Robert C. Martin", *updated.Author)
	assert.Equal(t, 464, *updated.Pages)

	removed, err := svc.Remove(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.DeleteSuccessMessage, removed.Message)
	assert.Equal(t, created.ID, removed.ID)

	_, err = svc.FindOne(ctx, created.ID.String())
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestBookService_Create_RejectsInvalidTitles(t *testing.T) {
	svc := newTestService(t)

	for _, title := range []string{"", "ab", "spam", "Testing Go", "ADMIN panel", strings.Repeat("x", 101)} {
		t.Run(title, func(t *testing.T) {
			_, err := svc.Create(context.Background(), model.CreateBookRequest{Title: title})
			var vErr *apperr.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Fields, "title")
		})
	}

	all, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "rejected books must not be stored")
}

func TestBookService_IDPreconditions(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	tests := []struct {
		name string
		call func(id string) error
	}{
		{"find", func(id string) error { _, err := svc.FindOne(ctx, id); return err }},
		{"update", func(id string) error { _, err := svc.Update(ctx, id, model.UpdateBookRequest{}); return err }},
		{"remove", func(id string) error { _, err := svc.Remove(ctx, id); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name+" empty id", func(t *testing.T) {
			var vErr *apperr.ValidationError
			require.ErrorAs(t, tt.call(""), &vErr)
			assert.Contains(t, vErr.Fields, "id")
		})
		t.Run(tt.name+" malformed id", func(t *testing.T) {
			assert.ErrorIs(t, tt.call("not-a-uuid"), model.ErrBookNotFound)
		})
		t.Run(tt.name+" unknown id", func(t *testing.T) {
			assert.ErrorIs(t, tt.call(uuid.NewString()), model.ErrBookNotFound)
		})
	}
}

func TestBookService_Update_InvalidPatchLeavesBookUnchanged(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	b, err := svc.Create(ctx, model.CreateBookRequest{Title: "Refactoring"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, b.ID.String(), model.UpdateBookRequest{Title: strPtr("delete me")})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)

	got, err := svc.FindOne(ctx, b.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Refactoring", got.Title)
}

func TestBookService_FindOne_CacheAside(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	redisCache := infraCache.NewRedisCache(srv.Addr(), "", 0)
	t.Cleanup(func() { _ = redisCache.Close() })

	svc := NewService(repository.NewMemoryRepository(), redisCache, time.Minute)

	b, err := svc.Create(ctx, model.CreateBookRequest{Title: "Domain-Driven Design"})
	require.NoError(t, err)
	key := model.GenerateBookCacheKey(b.ID)

	_, err = svc.FindOne(ctx, b.ID.String())
	require.NoError(t, err)
	assert.True(t, srv.Exists(key), "first read populates the cache")
	assert.Equal(t, time.Minute, srv.TTL(key))

	_, err = svc.Update(ctx, b.ID.String(), model.UpdateBookRequest{Pages: intPtr(560)})
	require.NoError(t, err)
	assert.False(t, srv.Exists(key), "update invalidates the cached copy")

	got, err := svc.FindOne(ctx, b.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 560, *got.Pages)

	_, err = svc.Remove(ctx, b.ID.String())
	require.NoError(t, err)
	assert.False(t, srv.Exists(key))

	_, err = svc.FindOne(ctx, b.ID.String())
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestBookService_FindOne_CacheDownFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	redisCache := infraCache.NewRedisCache(srv.Addr(), "", 0)
	t.Cleanup(func() { _ = redisCache.Close() })

	svc := NewService(repository.NewMemoryRepository(), redisCache, time.Minute)
	b, err := svc.Create(ctx, model.CreateBookRequest{Title: "The Pragmatic Programmer"})
	require.NoError(t, err)

	srv.Close()

	got, err := svc.FindOne(ctx, b.ID.String())
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

// pausingRepo dừng FindByID sau khi đã đọc xong bản ghi, cho đến khi release bị close
type pausingRepo struct {
	repository.RepositoryInterface
	pause   atomic.Bool
	read    chan struct{}
	release chan struct{}
}

func newPausingRepo() *pausingRepo {
	return &pausingRepo{
		RepositoryInterface: repository.NewMemoryRepository(),
		read:                make(chan struct{}),
		release:             make(chan struct{}),
	}
}

func (r *pausingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := r.RepositoryInterface.FindByID(ctx, id)
	if r.pause.CompareAndSwap(true, false) {
		close(r.read)
		<-r.release
	}
	return book, err
}

func TestBookService_FindOne_WriteDuringReadIsNotCached(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ctx context.Context, svc *BookService, id string) error
		check  func(t *testing.T, svc *BookService, id string)
	}{
		{
			name: "remove",
			mutate: func(ctx context.Context, svc *BookService, id string) error {
				_, err := svc.Remove(ctx, id)
				return err
			},
			check: func(t *testing.T, svc *BookService, id string) {
				_, err := svc.FindOne(context.Background(), id)
				assert.ErrorIs(t, err, model.ErrBookNotFound)
			},
		},
		{
			name: "update",
			mutate: func(ctx context.Context, svc *BookService, id string) error {
				_, err := svc.Update(ctx, id, model.UpdateBookRequest{Title: strPtr("Clean Architecture")})
				return err
			},
			check: func(t *testing.T, svc *BookService, id string) {
				got, err := svc.FindOne(context.Background(), id)
				require.NoError(t, err)
				assert.Equal(t, "Clean Architecture", got.Title)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			srv := miniredis.RunT(t)
			redisCache := infraCache.NewRedisCache(srv.Addr(), "", 0)
			t.Cleanup(func() { _ = redisCache.Close() })

			repo := newPausingRepo()
			svc := NewService(repo, redisCache, time.Minute)

			b, err := svc.Create(ctx, model.CreateBookRequest{Title: "Clean Code"})
			require.NoError(t, err)
			id := b.ID.String()
			key := model.GenerateBookCacheKey(b.ID)

			repo.pause.Store(true)
			done := make(chan error, 1)
			go func() {
				_, err := svc.FindOne(ctx, id)
				done <- err
			}()

			select {
			case <-repo.read:
			case <-time.After(5 * time.Second):
				t.Fatal("FindOne never reached the store")
			}

			require.NoError(t, tt.mutate(ctx, svc, id))
			close(repo.release)

			select {
			case err := <-done:
				require.NoError(t, err, "the in-flight read still returns the row it saw")
			case <-time.After(5 * time.Second):
				t.Fatal("FindOne did not return")
			}

			assert.False(t, srv.Exists(key), "a read that raced an invalidation must not populate the cache")
			tt.check(t, svc, id)
		})
	}
}
