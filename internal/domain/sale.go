package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleLine is one line item of a sale. UnitPrice is a snapshot of the book's
// price at sale time, a value copy rather than a live reference to the catalog.
// BookID is a soft reference: the book may be deleted later without touching
// historical sales.
type SaleLine struct {
	ID        uuid.UUID
	SaleID    uuid.UUID
	Position  int
	BookID    uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns quantity × unit price with exact decimal arithmetic.
func (l SaleLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Sale is an immutable record of a completed sale. Lines keep the order the
// items were added in (Position ascending); Total is the stored sum computed
// at creation time.
type Sale struct {
	ID           uuid.UUID
	CustomerName *string
	UserID       *uuid.UUID
	Lines        []SaleLine
	Total        decimal.Decimal
	CreatedAt    time.Time
}

// ComputeTotal sums the line subtotals. The result must always equal the
// stored Total; the ledger computes Total via this method at creation.
func (s *Sale) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
