// Package book implements the Book repository using PostgreSQL.
// Point lookups use raw SQL; list queries are built with squirrel and
// scanned with scany.
package book

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bookstore-orm/backend/internal/adapter/postgres"
	"github.com/bookstore-orm/backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// bookRow is the scan target for book queries.
type bookRow struct {
	ID        uuid.UUID       `db:"id"`
	Title     string          `db:"title"`
	Author    string          `db:"author"`
	ISBN      *string         `db:"isbn"`
	Stock     int             `db:"stock"`
	Price     decimal.Decimal `db:"price"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r bookRow) toDomain() *domain.Book {
	return &domain.Book{
		ID:        r.ID,
		Title:     r.Title,
		Author:    r.Author,
		ISBN:      r.ISBN,
		Stock:     r.Stock,
		Price:     r.Price,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const bookColumns = "id, title, author, isbn, stock, price, created_at, updated_at"

const insertSQL = `
INSERT INTO books (id, title, author, isbn, stock, price)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + bookColumns

const getByIDSQL = `
SELECT ` + bookColumns + `
FROM books
WHERE id = $1`

const getForUpdateSQL = `
SELECT ` + bookColumns + `
FROM books
WHERE id = ANY($1::uuid[])
ORDER BY id
FOR UPDATE`

const updateStockSQL = `
UPDATE books
SET stock = $2, updated_at = now()
WHERE id = $1`

const decrementStockSQL = `
UPDATE books
SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND stock >= $2`

const deleteSQL = `
DELETE FROM books
WHERE id = $1`

const titlesByIDsSQL = `
SELECT id, title
FROM books
WHERE id = ANY($1::uuid[])`

// Repo provides book persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new book repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a book and returns the stored record with DB-assigned
// timestamps. A duplicate ISBN surfaces as domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var row bookRow
	err := pgxscan.Get(ctx, q, &row, insertSQL,
		b.ID, b.Title, b.Author, b.ISBN, b.Stock, b.Price)
	if err != nil {
		return nil, postgres.MapError(err, "book", b.ID)
	}

	return row.toDomain(), nil
}

// GetByID returns a book by primary key.
// Returns domain.ErrNotFound if the book does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var row bookRow
	if err := pgxscan.Get(ctx, q, &row, getByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "book", id)
	}

	return row.toDomain(), nil
}

// List returns all books in stable order (creation time, then id).
// Returns an empty slice (not nil) when the catalog is empty.
func (r *Repo) List(ctx context.Context) ([]*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Select("id", "title", "author", "isbn", "stock", "price", "created_at", "updated_at").
		From("books").
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []bookRow
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	books := make([]*domain.Book, len(rows))
	for i, row := range rows {
		books[i] = row.toDomain()
	}

	return books, nil
}

// GetForUpdate loads the given books inside the current transaction with
// row-level locks (SELECT ... FOR UPDATE), ordered by id so concurrent sales
// acquire locks in the same order. Books missing from the result simply do
// not appear in the map.
func (r *Repo) GetForUpdate(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []bookRow
	if err := pgxscan.Select(ctx, q, &rows, getForUpdateSQL, ids); err != nil {
		return nil, fmt.Errorf("lock books: %w", err)
	}

	books := make(map[uuid.UUID]*domain.Book, len(rows))
	for _, row := range rows {
		books[row.ID] = row.toDomain()
	}

	return books, nil
}

// UpdateStock overwrites a book's stock.
// Returns domain.ErrNotFound if the book does not exist. The schema CHECK
// rejects negative values as domain.ErrValidation.
func (r *Repo) UpdateStock(ctx context.Context, id uuid.UUID, newStock int) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateStockSQL, id, newStock)
	if err != nil {
		return postgres.MapError(err, "book", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DecrementStock subtracts quantity from a book's stock. The WHERE guard
// refuses to go below zero; callers are expected to have locked the row and
// verified sufficiency, so an unmatched row is a conflict, not a user error.
func (r *Repo) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, decrementStockSQL, id, quantity)
	if err != nil {
		return postgres.MapError(err, "book", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book %s: stock decrement by %d refused: %w", id, quantity, domain.ErrConflict)
	}

	return nil
}

// Delete removes a book. Historical sales keep their snapshot line items.
// Returns domain.ErrNotFound if the book does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "book", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// TitlesByIDs returns the titles of the given books. Deleted books are
// absent from the map; the caller decides how to render the gap.
func (r *Repo) TitlesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, titlesByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("titles by ids: %w", err)
	}
	defer rows.Close()

	titles := make(map[uuid.UUID]string, len(ids))
	for rows.Next() {
		var id uuid.UUID
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		titles[id] = title
	}

	return titles, rows.Err()
}
