package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

// GetBook returns the book with the given id, or ErrNotFound.
func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return s.books.GetByID(ctx, id)
}
