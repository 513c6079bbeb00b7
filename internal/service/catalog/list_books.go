package catalog

import (
	"context"
	"fmt"

	"github.com/bookstore-orm/backend/internal/domain"
)

// ListBooks returns all catalog entries in creation order.
func (s *Service) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}
