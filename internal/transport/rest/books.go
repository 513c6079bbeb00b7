package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookstore-orm/backend/internal/domain"
	"github.com/bookstore-orm/backend/internal/service/catalog"
)

type catalogService interface {
	AddBook(ctx context.Context, input catalog.AddBookInput) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	UpdateStock(ctx context.Context, id uuid.UUID, input catalog.UpdateStockInput) error
	DeleteBook(ctx context.Context, id uuid.UUID) error
}

// BookHandler serves the book catalog endpoints.
type BookHandler struct {
	catalog catalogService
	log     *slog.Logger
}

// NewBookHandler creates a BookHandler.
func NewBookHandler(catalog catalogService, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		catalog: catalog,
		log:     logger.With("handler", "books"),
	}
}

type bookRequest struct {
	Title  string          `json:"title"`
	Author string          `json:"author"`
	ISBN   *string         `json:"isbn,omitempty"`
	Stock  int             `json:"stock"`
	Price  decimal.Decimal `json:"price"`
}

type bookResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	ISBN      *string         `json:"isbn,omitempty"`
	Stock     int             `json:"stock"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		Stock:     b.Stock,
		Price:     b.Price,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// Create handles POST /books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	book, err := h.catalog.AddBook(r.Context(), catalog.AddBookInput{
		Title:  req.Title,
		Author: req.Author,
		ISBN:   req.ISBN,
		Stock:  req.Stock,
		Price:  req.Price,
	})
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBookResponse(book))
}

// List handles GET /books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.ListBooks(r.Context())
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	resp := make([]bookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, toBookResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	book, err := h.catalog.GetBook(r.Context(), id)
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(book))
}

type updateStockRequest struct {
	Stock int `json:"stock"`
}

// UpdateStock handles PATCH /books/{id}/stock.
func (h *BookHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	var req updateStockRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	if err := h.catalog.UpdateStock(r.Context(), id, catalog.UpdateStockInput{Stock: req.Stock}); err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /books/{id}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	if err := h.catalog.DeleteBook(r.Context(), id); err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "must be a valid UUID")
	}
	return id, nil
}
