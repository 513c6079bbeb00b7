// Package ledger implements sale creation and lookup. Sale creation is the
// one multi-step state transition in the system: it checks and decrements
// catalog stock, snapshots prices, and appends the sale as a single
// transactional unit.
package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

type bookRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	GetForUpdate(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Book, error)
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type saleRepo interface {
	Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	List(ctx context.Context) ([]*domain.Sale, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides sale ledger operations.
type Service struct {
	books bookRepo
	users userRepo
	sales saleRepo
	audit auditLogger
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new Ledger service.
func NewService(
	log *slog.Logger,
	books bookRepo,
	users userRepo,
	sales saleRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		books: books,
		users: users,
		sales: sales,
		audit: audit,
		tx:    tx,
		log:   log.With("service", "ledger"),
	}
}
