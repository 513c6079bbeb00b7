// Package sale implements the Sale repository using PostgreSQL.
// A sale and its line items are always written and read together; the
// repository never exposes a partially loaded sale.
package sale

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bookstore-orm/backend/internal/adapter/postgres"
	"github.com/bookstore-orm/backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type saleRow struct {
	ID           uuid.UUID       `db:"id"`
	CustomerName *string         `db:"customer_name"`
	UserID       *uuid.UUID      `db:"user_id"`
	Total        decimal.Decimal `db:"total"`
	CreatedAt    time.Time       `db:"created_at"`
}

type lineRow struct {
	ID        uuid.UUID       `db:"id"`
	SaleID    uuid.UUID       `db:"sale_id"`
	Position  int             `db:"position"`
	BookID    uuid.UUID       `db:"book_id"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
}

func (r lineRow) toDomain() domain.SaleLine {
	return domain.SaleLine{
		ID:        r.ID,
		SaleID:    r.SaleID,
		Position:  r.Position,
		BookID:    r.BookID,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
	}
}

const insertSaleSQL = `
INSERT INTO sales (id, customer_name, user_id, total)
VALUES ($1, $2, $3, $4)
RETURNING created_at`

const insertLineSQL = `
INSERT INTO sale_lines (id, sale_id, position, book_id, quantity, unit_price)
VALUES ($1, $2, $3, $4, $5, $6)`

const getSaleByIDSQL = `
SELECT id, customer_name, user_id, total, created_at
FROM sales
WHERE id = $1`

const linesBySaleIDSQL = `
SELECT id, sale_id, position, book_id, quantity, unit_price
FROM sale_lines
WHERE sale_id = $1
ORDER BY position`

const linesBySaleIDsSQL = `
SELECT id, sale_id, position, book_id, quantity, unit_price
FROM sale_lines
WHERE sale_id = ANY($1::uuid[])
ORDER BY sale_id, position`

// Repo provides sale persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new sale repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a sale and all its line items. The caller is expected to
// run it inside a transaction (TxManager) together with the stock decrements.
// Line positions follow slice order.
func (r *Repo) Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err := q.QueryRow(ctx, insertSaleSQL, s.ID, s.CustomerName, s.UserID, s.Total).
		Scan(&s.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "sale", s.ID)
	}

	batch := &pgx.Batch{}
	for i := range s.Lines {
		l := &s.Lines[i]
		l.SaleID = s.ID
		l.Position = i
		batch.Queue(insertLineSQL, l.ID, l.SaleID, l.Position, l.BookID, l.Quantity, l.UnitPrice)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()
	for range s.Lines {
		if _, err := br.Exec(); err != nil {
			return nil, postgres.MapError(err, "sale_line", s.ID)
		}
	}

	return s, nil
}

// GetByID returns a sale with its line items in stored order.
// Returns domain.ErrNotFound if the sale does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var row saleRow
	if err := pgxscan.Get(ctx, q, &row, getSaleByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "sale", id)
	}

	var lines []lineRow
	if err := pgxscan.Select(ctx, q, &lines, linesBySaleIDSQL, id); err != nil {
		return nil, fmt.Errorf("load sale lines: %w", err)
	}

	return assemble(row, lines), nil
}

// List returns all sales with their line items, ordered by creation time
// then id. Returns an empty slice (not nil) when no sales exist.
func (r *Repo) List(ctx context.Context) ([]*domain.Sale, error) {
	return r.list(ctx, psql.
		Select("id", "customer_name", "user_id", "total", "created_at").
		From("sales").
		OrderBy("created_at", "id"))
}

// ListByDateRange returns sales whose creation time falls in [start, end),
// with line items, ordered by creation time then id.
func (r *Repo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Sale, error) {
	return r.list(ctx, psql.
		Select("id", "customer_name", "user_id", "total", "created_at").
		From("sales").
		Where(sq.GtOrEq{"created_at": start}).
		Where(sq.Lt{"created_at": end}).
		OrderBy("created_at", "id"))
}

func (r *Repo) list(ctx context.Context, builder sq.SelectBuilder) ([]*domain.Sale, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sales query: %w", err)
	}

	var rows []saleRow
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	if len(rows) == 0 {
		return []*domain.Sale{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var lines []lineRow
	if err := pgxscan.Select(ctx, q, &lines, linesBySaleIDsSQL, ids); err != nil {
		return nil, fmt.Errorf("load sale lines: %w", err)
	}

	bySale := make(map[uuid.UUID][]lineRow, len(rows))
	for _, l := range lines {
		bySale[l.SaleID] = append(bySale[l.SaleID], l)
	}

	sales := make([]*domain.Sale, len(rows))
	for i, row := range rows {
		sales[i] = assemble(row, bySale[row.ID])
	}

	return sales, nil
}

func assemble(row saleRow, lines []lineRow) *domain.Sale {
	s := &domain.Sale{
		ID:           row.ID,
		CustomerName: row.CustomerName,
		UserID:       row.UserID,
		Total:        row.Total,
		CreatedAt:    row.CreatedAt,
		Lines:        make([]domain.SaleLine, len(lines)),
	}
	for i, l := range lines {
		s.Lines[i] = l.toDomain()
	}
	return s
}
