package service

import (
	"context"
	"fmt"
	"time"

	"library_api/internal/common"
	"library_api/internal/domain/model"
	"library_api/internal/domain/repository"

	"github.com/google/uuid"
)

// BookCache is a best-effort read cache for book-by-id lookups. A nil cache
// disables caching entirely.
type BookCache interface {
	Get(ctx context.Context, id string) (*model.Book, bool)
	Set(ctx context.Context, book *model.Book)
	Invalidate(ctx context.Context, id string)
}

type BookService struct {
	bookRepo repository.BookRepository
	cache    BookCache
}

func NewBookService(bookRepo repository.BookRepository, cache BookCache) *BookService {
	return &BookService{bookRepo: bookRepo, cache: cache}
}

type CreateBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

type UpdateBookRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

func validateBookFields(title, author, description string) error {
	if title == "" || len(title) > model.BookTitleMaxLength {
		return common.Errorf("title must be between 1 and %d characters: %w", model.BookTitleMaxLength, common.ErrValidation)
	}
	if author == "" || len(author) > model.BookAuthorMaxLength {
		return common.Errorf("author must be between 1 and %d characters: %w", model.BookAuthorMaxLength, common.ErrValidation)
	}
	if len(description) > model.BookDescriptionMaxLength {
		return common.Errorf("description cannot exceed %d characters: %w", model.BookDescriptionMaxLength, common.ErrValidation)
	}
	return nil
}

func (s *BookService) CreateBook(ctx context.Context, req CreateBookRequest) (*model.Book, error) {
	if err := validateBookFields(req.Title, req.Author, req.Description); err != nil {
		return nil, err
	}

	book := &model.Book{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	book.UpdatedAt = book.CreatedAt

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

func (s *BookService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	if s.cache != nil {
		if book, ok := s.cache.Get(ctx, id); ok {
			return book, nil
		}
	}

	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, book)
	}
	return book, nil
}

func (s *BookService) ListBooks(ctx context.Context, page, pageSize int, searchTerm string) ([]model.Book, int, error) {
	offset := (page - 1) * pageSize
	return s.bookRepo.List(ctx, pageSize, offset, searchTerm)
}

func (s *BookService) UpdateBook(ctx context.Context, id string, req UpdateBookRequest) (*model.Book, error) {
	if req.ID != "" && req.ID != id {
		return nil, common.Errorf("body id does not match path id: %w", common.ErrValidation)
	}
	if err := validateBookFields(req.Title, req.Author, req.Description); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book.Title = req.Title
	book.Author = req.Author
	book.Description = req.Description

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	book.UpdatedAt = time.Now().UTC()

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return book, nil
}

func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}
