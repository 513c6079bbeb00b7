package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

var (
	_ bookRepo    = &bookRepoMock{}
	_ auditLogger = &auditLoggerMock{}
	_ txManager   = &txManagerMock{}
)

type bookRepoMock struct {
	CreateFunc      func(ctx context.Context, b *domain.Book) (*domain.Book, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	ListFunc        func(ctx context.Context) ([]*domain.Book, error)
	UpdateStockFunc func(ctx context.Context, id uuid.UUID, stock int) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error

	CreateCalls []*domain.Book
	DeleteCalls []uuid.UUID
}

func (m *bookRepoMock) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	m.CreateCalls = append(m.CreateCalls, b)
	return m.CreateFunc(ctx, b)
}

func (m *bookRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *bookRepoMock) List(ctx context.Context) ([]*domain.Book, error) {
	return m.ListFunc(ctx)
}

func (m *bookRepoMock) UpdateStock(ctx context.Context, id uuid.UUID, stock int) error {
	return m.UpdateStockFunc(ctx, id, stock)
}

func (m *bookRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalls = append(m.DeleteCalls, id)
	return m.DeleteFunc(ctx, id)
}

type auditLoggerMock struct {
	LogFunc  func(ctx context.Context, record domain.AuditRecord) error
	LogCalls []domain.AuditRecord
}

func (m *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	m.LogCalls = append(m.LogCalls, record)
	if m.LogFunc == nil {
		return nil
	}
	return m.LogFunc(ctx, record)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		return fn(ctx)
	}
	return m.RunInTxFunc(ctx, fn)
}
