package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

// SaleItemInput is one requested line of a sale, in the order the customer
// added it.
type SaleItemInput struct {
	BookID   uuid.UUID
	Quantity int
}

// CreateSaleInput holds the parameters for creating a sale.
type CreateSaleInput struct {
	CustomerName *string
	UserID       *uuid.UUID
	Items        []SaleItemInput
}

// Validate checks input shape: at least one item, valid book ids, and
// quantities of at least one. Referential checks (book/user existence,
// stock) belong to CreateSale itself.
func (i CreateSaleInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Items) == 0 {
		errs = append(errs, domain.FieldError{Field: "items", Message: "at least one item required"})
	}
	for n, item := range i.Items {
		if item.BookID == uuid.Nil {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("items[%d].book_id", n),
				Message: "required",
			})
		}
		if item.Quantity < 1 {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", n),
				Message: "must be at least 1",
			})
		}
	}
	if i.CustomerName != nil && len(strings.TrimSpace(*i.CustomerName)) > 200 {
		errs = append(errs, domain.FieldError{Field: "customer_name", Message: "max 200 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
