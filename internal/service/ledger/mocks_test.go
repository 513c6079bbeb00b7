package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

var (
	_ bookRepo    = &bookRepoMock{}
	_ userRepo    = &userRepoMock{}
	_ saleRepo    = &saleRepoMock{}
	_ auditLogger = &auditLoggerMock{}
	_ txManager   = &txManagerMock{}
)

type bookRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	GetForUpdateFunc   func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Book, error)
	DecrementStockFunc func(ctx context.Context, id uuid.UUID, quantity int) error

	DecrementStockCalls []struct {
		ID       uuid.UUID
		Quantity int
	}
}

func (m *bookRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *bookRepoMock) GetForUpdate(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Book, error) {
	return m.GetForUpdateFunc(ctx, ids)
}

func (m *bookRepoMock) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	m.DecrementStockCalls = append(m.DecrementStockCalls, struct {
		ID       uuid.UUID
		Quantity int
	}{id, quantity})
	return m.DecrementStockFunc(ctx, id, quantity)
}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

type saleRepoMock struct {
	CreateFunc  func(ctx context.Context, s *domain.Sale) (*domain.Sale, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	ListFunc    func(ctx context.Context) ([]*domain.Sale, error)

	CreateCalls int
}

func (m *saleRepoMock) Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error) {
	m.CreateCalls++
	return m.CreateFunc(ctx, s)
}

func (m *saleRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *saleRepoMock) List(ctx context.Context) ([]*domain.Sale, error) {
	return m.ListFunc(ctx)
}

type auditLoggerMock struct {
	LogFunc  func(ctx context.Context, record domain.AuditRecord) error
	LogCalls int
}

func (m *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	m.LogCalls++
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
