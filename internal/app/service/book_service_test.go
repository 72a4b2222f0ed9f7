package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"library_api/internal/common"
	"library_api/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBookRepo struct {
	mu    sync.Mutex
	books map[string]*model.Book

	findCalls int
}

func newMemBookRepo() *memBookRepo {
	return &memBookRepo{books: map[string]*model.Book{}}
}

func (r *memBookRepo) Create(ctx context.Context, book *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := *book
	r.books[book.ID] = &b
	return nil
}

func (r *memBookRepo) FindByID(ctx context.Context, id string) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	book, ok := r.books[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	b := *book
	return &b, nil
}

func (r *memBookRepo) List(ctx context.Context, limit, offset int, searchTerm string) ([]model.Book, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []model.Book
	for _, b := range r.books {
		if searchTerm == "" ||
			strings.Contains(strings.ToLower(b.Title), strings.ToLower(searchTerm)) ||
			strings.Contains(strings.ToLower(b.Author), strings.ToLower(searchTerm)) {
			all = append(all, *b)
		}
	}
	total := len(all)
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *memBookRepo) Update(ctx context.Context, book *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[book.ID]; !ok {
		return common.ErrNotFound
	}
	b := *book
	r.books[book.ID] = &b
	return nil
}

func (r *memBookRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.books, id)
	return nil
}

type memBookCache struct {
	entries     map[string]*model.Book
	invalidated []string
}

func newMemBookCache() *memBookCache {
	return &memBookCache{entries: map[string]*model.Book{}}
}

func (c *memBookCache) Get(ctx context.Context, id string) (*model.Book, bool) {
	book, ok := c.entries[id]
	return book, ok
}

func (c *memBookCache) Set(ctx context.Context, book *model.Book) {
	c.entries[book.ID] = book
}

func (c *memBookCache) Invalidate(ctx context.Context, id string) {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

func TestCreateBook_Success(t *testing.T) {
	svc := NewBookService(newMemBookRepo(), nil)

	book, err := svc.CreateBook(context.Background(), CreateBookRequest{
		Title:  "The Go Programming Language",
		Author: "Donovan & Kernighan",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, book.ID)
	assert.False(t, book.CreatedAt.IsZero())
}

func TestCreateBook_Validation(t *testing.T) {
	svc := NewBookService(newMemBookRepo(), nil)

	cases := []CreateBookRequest{
		{Title: "", Author: "a"},
		{Title: strings.Repeat("t", 201), Author: "a"},
		{Title: "t", Author: ""},
		{Title: "t", Author: strings.Repeat("a", 101)},
		{Title: "t", Author: "a", Description: strings.Repeat("d", 1001)},
	}
	for i, req := range cases {
		_, err := svc.CreateBook(context.Background(), req)
		assert.True(t, errors.Is(err, common.ErrValidation), "case %d", i)
	}
}

func TestGetBook_CacheReadThrough(t *testing.T) {
	repo := newMemBookRepo()
	cache := newMemBookCache()
	svc := NewBookService(repo, cache)

	created, err := svc.CreateBook(context.Background(), CreateBookRequest{Title: "t", Author: "a"})
	require.NoError(t, err)

	// First read hits the store and primes the cache.
	_, err = svc.GetBook(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls)

	// Second read is served from cache.
	book, err := svc.GetBook(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, book.ID)
	assert.Equal(t, 1, repo.findCalls)
}

func TestGetBook_NotFound(t *testing.T) {
	svc := NewBookService(newMemBookRepo(), nil)

	_, err := svc.GetBook(context.Background(), "missing")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestUpdateBook_InvalidatesCache(t *testing.T) {
	repo := newMemBookRepo()
	cache := newMemBookCache()
	svc := NewBookService(repo, cache)

	created, err := svc.CreateBook(context.Background(), CreateBookRequest{Title: "t", Author: "a"})
	require.NoError(t, err)
	_, err = svc.GetBook(context.Background(), created.ID) // prime cache
	require.NoError(t, err)

	updated, err := svc.UpdateBook(context.Background(), created.ID, UpdateBookRequest{Title: "t2", Author: "a2"})
	require.NoError(t, err)
	assert.Equal(t, "t2", updated.Title)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Contains(t, cache.invalidated, created.ID)
}

func TestUpdateBook_MismatchedBodyID(t *testing.T) {
	svc := NewBookService(newMemBookRepo(), nil)

	_, err := svc.UpdateBook(context.Background(), "path-id", UpdateBookRequest{ID: "other-id", Title: "t", Author: "a"})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestDeleteBook_InvalidatesCache(t *testing.T) {
	repo := newMemBookRepo()
	cache := newMemBookCache()
	svc := NewBookService(repo, cache)

	created, err := svc.CreateBook(context.Background(), CreateBookRequest{Title: "t", Author: "a"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBook(context.Background(), created.ID))
	assert.Contains(t, cache.invalidated, created.ID)

	err = svc.DeleteBook(context.Background(), created.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestListBooks_Pagination(t *testing.T) {
	repo := newMemBookRepo()
	svc := NewBookService(repo, nil)

	for i := 0; i < 5; i++ {
		_, err := svc.CreateBook(context.Background(), CreateBookRequest{Title: "t", Author: "a"})
		require.NoError(t, err)
	}

	books, total, err := svc.ListBooks(context.Background(), 1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, books, 2)

	books, total, err = svc.ListBooks(context.Background(), 3, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, books, 1)
}
