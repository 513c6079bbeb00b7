// Package catalog implements book catalog management.
package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

type bookRepo interface {
	Create(ctx context.Context, b *domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	List(ctx context.Context) ([]*domain.Book, error)
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides catalog operations.
type Service struct {
	books bookRepo
	audit auditLogger
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new Catalog service.
func NewService(log *slog.Logger, books bookRepo, audit auditLogger, tx txManager) *Service {
	return &Service{
		books: books,
		audit: audit,
		tx:    tx,
		log:   log.With("service", "catalog"),
	}
}
