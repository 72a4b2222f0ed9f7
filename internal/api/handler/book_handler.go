package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"library_api/internal/app/service"
	"library_api/internal/common"
	"library_api/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type BookHandler struct {
	bookService *service.BookService
}

func NewBookHandler(bs *service.BookService) *BookHandler {
	return &BookHandler{bookService: bs}
}

func (h *BookHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listBooks)
	r.Post("/", h.createBook)
	r.Get("/{bookID}", h.getBook)
	r.Put("/{bookID}", h.updateBook)
	r.Delete("/{bookID}", h.deleteBook)
}

func (h *BookHandler) listBooks(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	searchTerm := r.URL.Query().Get("search")

	books, total, err := h.bookService.ListBooks(r.Context(), page, pageSize, searchTerm)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	type PaginatedBooksResponse struct {
		Books    []model.Book `json:"books"`
		Total    int          `json:"total"`
		Page     int          `json:"page"`
		PageSize int          `json:"page_size"`
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedBooksResponse{
		Books:    books,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *BookHandler) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.bookService.GetBook(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, book)
}

func (h *BookHandler) createBook(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	book, err := h.bookService.CreateBook(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, book)
}

func (h *BookHandler) updateBook(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if _, err := h.bookService.UpdateBook(r.Context(), chi.URLParam(r, "bookID"), req); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookHandler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.bookService.DeleteBook(r.Context(), chi.URLParam(r, "bookID")); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
