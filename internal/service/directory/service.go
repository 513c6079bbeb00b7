// Package directory implements the user directory: staff or customer
// accounts that sales may optionally reference.
package directory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

type userRepo interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides user directory operations.
type Service struct {
	users userRepo
	audit auditLogger
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new Directory service.
func NewService(log *slog.Logger, users userRepo, audit auditLogger, tx txManager) *Service {
	return &Service{
		users: users,
		audit: audit,
		tx:    tx,
		log:   log.With("service", "directory"),
	}
}
