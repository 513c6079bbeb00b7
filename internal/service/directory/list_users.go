package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

// ListUsers returns all directory entries in creation order.
func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetUser returns the user with the given id, or ErrNotFound.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
