package ledger

import (
	"context"
	"fmt"

	"github.com/bookstore-orm/backend/internal/domain"
)

// ListSales returns all sales with their line items, oldest first.
func (s *Service) ListSales(ctx context.Context) ([]*domain.Sale, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}
