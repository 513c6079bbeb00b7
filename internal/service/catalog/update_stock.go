package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

// UpdateStock replaces a book's stock level with an absolute value.
func (s *Service) UpdateStock(ctx context.Context, id uuid.UUID, input UpdateStockInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.books.UpdateStock(txCtx, id, input.Stock); err != nil {
			return fmt.Errorf("update stock: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeBook,
			EntityID:   &id,
			Action:     domain.AuditActionUpdate,
			Changes:    map[string]any{"stock": input.Stock},
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "stock updated",
		slog.String("book_id", id.String()),
		slog.Int("stock", input.Stock),
	)

	return nil
}
