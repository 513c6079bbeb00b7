package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

// AddBook creates a catalog entry. A duplicate ISBN returns
// ErrAlreadyExists; books without an ISBN never collide.
func (s *Service) AddBook(ctx context.Context, input AddBookInput) (*domain.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	book := &domain.Book{
		ID:     uuid.New(),
		Title:  strings.TrimSpace(input.Title),
		Author: strings.TrimSpace(input.Author),
		ISBN:   normalizeISBN(input.ISBN),
		Stock:  input.Stock,
		Price:  input.Price,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.books.Create(txCtx, book)
		if err != nil {
			return fmt.Errorf("create book: %w", err)
		}
		book = created

		return s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeBook,
			EntityID:   &book.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"title": book.Title,
				"stock": book.Stock,
				"price": book.Price.String(),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "book added",
		slog.String("book_id", book.ID.String()),
		slog.String("title", book.Title),
	)

	return book, nil
}

func normalizeISBN(isbn *string) *string {
	if isbn == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*isbn)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
