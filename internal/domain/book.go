package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book represents a catalog entry with its current stock and price.
// Price is the CURRENT catalog price; past sales keep their own snapshot
// (see SaleLine.UnitPrice) and are not affected by later price changes.
type Book struct {
	ID        uuid.UUID
	Title     string
	Author    string
	ISBN      *string
	Stock     int
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
