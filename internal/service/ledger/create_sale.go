package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

// CreateSale validates the request, then atomically decrements stock,
// snapshots unit prices, and appends the sale. Either everything commits or
// nothing does: a failure after the first decrement rolls the whole
// transaction back.
//
// Validation order: input shape, book existence, user existence, stock
// pre-check. The stock pre-check runs on a plain read and exists only to
// fail fast; the binding check repeats inside the transaction against rows
// locked with SELECT ... FOR UPDATE, so two concurrent sales can never both
// succeed when their combined quantity exceeds the available stock.
func (s *Service) CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Sale, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	required := requiredPerBook(input.Items)

	// Unique book ids in submission order, so the first broken line item is
	// the one reported.
	bookIDs := make([]uuid.UUID, 0, len(required))
	seen := make(map[uuid.UUID]bool, len(required))
	for _, item := range input.Items {
		if !seen[item.BookID] {
			seen[item.BookID] = true
			bookIDs = append(bookIDs, item.BookID)
		}
	}

	// Fail-fast passes outside the transaction.
	resolved := make(map[uuid.UUID]*domain.Book, len(bookIDs))
	for _, id := range bookIDs {
		b, err := s.books.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve book: %w", err)
		}
		resolved[id] = b
	}

	if input.UserID != nil {
		if _, err := s.users.GetByID(ctx, *input.UserID); err != nil {
			return nil, fmt.Errorf("resolve user: %w", err)
		}
	}

	for _, id := range bookIDs {
		if b := resolved[id]; b.Stock < required[id] {
			return nil, &domain.InsufficientStockError{
				BookID:    b.ID,
				Title:     b.Title,
				Requested: required[id],
				Available: b.Stock,
			}
		}
	}

	var sale *domain.Sale
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.books.GetForUpdate(txCtx, bookIDs)
		if err != nil {
			return err
		}

		// Binding re-validation against the locked rows.
		for _, id := range bookIDs {
			b, ok := locked[id]
			if !ok {
				return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
			}
			if b.Stock < required[id] {
				return &domain.InsufficientStockError{
					BookID:    b.ID,
					Title:     b.Title,
					Requested: required[id],
					Available: b.Stock,
				}
			}
		}

		sale = &domain.Sale{
			ID:           uuid.New(),
			CustomerName: trimOrNil(input.CustomerName),
			UserID:       input.UserID,
			Lines:        make([]domain.SaleLine, len(input.Items)),
		}
		for i, item := range input.Items {
			sale.Lines[i] = domain.SaleLine{
				ID:        uuid.New(),
				BookID:    item.BookID,
				Quantity:  item.Quantity,
				UnitPrice: locked[item.BookID].Price, // price snapshot
			}
		}
		sale.Total = sale.ComputeTotal()

		for _, id := range bookIDs {
			if err := s.books.DecrementStock(txCtx, id, required[id]); err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
		}

		if sale, err = s.sales.Create(txCtx, sale); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}

		if err := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeSale,
			EntityID:   &sale.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"total": sale.Total.String(),
				"lines": len(sale.Lines),
			},
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "sale created",
		slog.String("sale_id", sale.ID.String()),
		slog.Int("lines", len(sale.Lines)),
		slog.String("total", sale.Total.String()),
	)

	return sale, nil
}

// requiredPerBook aggregates requested quantities per book across all lines,
// so a sale listing the same book twice is checked against the sum.
func requiredPerBook(items []SaleItemInput) map[uuid.UUID]int {
	required := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		required[item.BookID] += item.Quantity
	}
	return required
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
