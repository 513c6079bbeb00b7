package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bookstore-orm/backend/internal/domain"
)

const (
	maxTitleLen  = 500
	maxAuthorLen = 200
)

// AddBookInput carries the fields for creating a catalog entry.
type AddBookInput struct {
	Title  string
	Author string
	ISBN   *string
	Stock  int
	Price  decimal.Decimal
}

// Validate checks the input and returns a ValidationError listing every
// violated field.
func (in AddBookInput) Validate() error {
	var fields []domain.FieldError

	if strings.TrimSpace(in.Title) == "" {
		fields = append(fields, domain.FieldError{Field: "title", Message: "must not be empty"})
	} else if len(in.Title) > maxTitleLen {
		fields = append(fields, domain.FieldError{Field: "title", Message: "too long"})
	}

	if strings.TrimSpace(in.Author) == "" {
		fields = append(fields, domain.FieldError{Field: "author", Message: "must not be empty"})
	} else if len(in.Author) > maxAuthorLen {
		fields = append(fields, domain.FieldError{Field: "author", Message: "too long"})
	}

	if in.ISBN != nil && strings.TrimSpace(*in.ISBN) == "" {
		fields = append(fields, domain.FieldError{Field: "isbn", Message: "must not be blank when present"})
	}

	if in.Stock < 0 {
		fields = append(fields, domain.FieldError{Field: "stock", Message: "must not be negative"})
	}

	if in.Price.IsNegative() {
		fields = append(fields, domain.FieldError{Field: "price", Message: "must not be negative"})
	}

	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// UpdateStockInput carries the fields for replacing a book's stock level.
type UpdateStockInput struct {
	Stock int
}

func (in UpdateStockInput) Validate() error {
	if in.Stock < 0 {
		return domain.NewValidationError("stock", "must not be negative")
	}
	return nil
}
