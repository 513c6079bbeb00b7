package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

// DeleteBook removes a book from the catalog. Sales that reference the book
// keep their lines and totals: lines carry a price snapshot and are not
// foreign-keyed to the catalog.
func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.books.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete book: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeBook,
			EntityID:   &id,
			Action:     domain.AuditActionDelete,
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "book deleted", slog.String("book_id", id.String()))

	return nil
}
