package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

// GetSale returns a sale by id. A missing sale is not an error: the second
// return value reports presence, mirroring a map lookup.
func (s *Service) GetSale(ctx context.Context, id uuid.UUID) (*domain.Sale, bool, error) {
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get sale: %w", err)
	}
	return sale, true, nil
}
