package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bookstore-orm/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedBook inserts a book with the given stock and price.
// Returns the filled domain.Book.
func SeedBook(t *testing.T, pool *pgxpool.Pool, stock int, price string) domain.Book {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	isbn := "978-" + suffix
	now := time.Now().UTC().Truncate(time.Microsecond)

	p, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("testhelper: SeedBook parse price %q: %v", price, err)
	}

	book := domain.Book{
		ID:        uuid.New(),
		Title:     "Test Book " + suffix,
		Author:    "Test Author " + suffix,
		ISBN:      &isbn,
		Stock:     stock,
		Price:     p,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO books (id, title, author, isbn, stock, price, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		book.ID, book.Title, book.Author, book.ISBN, book.Stock, book.Price, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBook insert: %v", err)
	}

	return book
}

// SeedUser inserts a user with generated name and email.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	email := "customer-" + suffix + "@example.com"
	now := time.Now().UTC().Truncate(time.Microsecond)

	user := domain.User{
		ID:        uuid.New(),
		Name:      "Test Customer " + suffix,
		Email:     &email,
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, name, email, created_at)
		 VALUES ($1, $2, $3, $4)`,
		user.ID, user.Name, user.Email, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// CurrentStock reads a book's stock directly, bypassing the repositories.
func CurrentStock(t *testing.T, pool *pgxpool.Pool, bookID uuid.UUID) int {
	t.Helper()

	var stock int
	err := pool.QueryRow(context.Background(),
		`SELECT stock FROM books WHERE id = $1`, bookID,
	).Scan(&stock)
	if err != nil {
		t.Fatalf("testhelper: CurrentStock: %v", err)
	}
	return stock
}
