// Package invoice renders sales as fixed-layout text documents. Rendering
// is deterministic: the same sale always produces byte-identical output, so
// an invoice can be regenerated at any time.
package invoice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

type saleRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
}

type bookTitles interface {
	TitlesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// Formatter renders invoices for stored sales.
type Formatter struct {
	sales  saleRepo
	titles bookTitles
}

// NewFormatter creates a new invoice Formatter.
func NewFormatter(sales saleRepo, titles bookTitles) *Formatter {
	return &Formatter{sales: sales, titles: titles}
}

const (
	lineWidth   = 72
	noCustomer  = "(walk-in customer)"
	timeLayout  = "2006-01-02 15:04:05 MST"
	titleColLen = 38
)

// Render loads the sale and formats its invoice. Returns ErrNotFound if no
// sale with the id exists.
func (f *Formatter) Render(ctx context.Context, saleID uuid.UUID) (string, error) {
	sale, err := f.sales.GetByID(ctx, saleID)
	if err != nil {
		return "", fmt.Errorf("load sale: %w", err)
	}
	return f.Format(ctx, sale)
}

// Format renders an already-loaded sale. Line titles are resolved from the
// current catalog; lines whose book has since been deleted keep their
// quantity, snapshot price, and subtotal, with a placeholder title. The
// printed total is the stored total, never recomputed.
func (f *Formatter) Format(ctx context.Context, sale *domain.Sale) (string, error) {
	ids := make([]uuid.UUID, 0, len(sale.Lines))
	seen := make(map[uuid.UUID]struct{}, len(sale.Lines))
	for _, l := range sale.Lines {
		if _, ok := seen[l.BookID]; ok {
			continue
		}
		seen[l.BookID] = struct{}{}
		ids = append(ids, l.BookID)
	}

	titles, err := f.titles.TitlesByIDs(ctx, ids)
	if err != nil {
		return "", fmt.Errorf("resolve titles: %w", err)
	}

	var b strings.Builder
	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "INVOICE")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Sale:     %s\n", sale.ID)
	fmt.Fprintf(&b, "Date:     %s\n", sale.CreatedAt.UTC().Format(timeLayout))
	fmt.Fprintf(&b, "Customer: %s\n", customerLabel(sale))
	if sale.UserID != nil {
		fmt.Fprintf(&b, "User:     %s\n", *sale.UserID)
	} else {
		fmt.Fprintln(&b, "User:     -")
	}
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "%-*s %5s %12s %12s\n", titleColLen, "Item", "Qty", "Unit", "Subtotal")
	fmt.Fprintln(&b, thin)

	for _, l := range sale.Lines {
		title, ok := titles[l.BookID]
		if !ok {
			title = fmt.Sprintf("[deleted book %s]", l.BookID)
		}
		fmt.Fprintf(&b, "%-*s %5d %12s %12s\n",
			titleColLen, clip(title, titleColLen),
			l.Quantity,
			l.UnitPrice.StringFixed(2),
			l.Subtotal().StringFixed(2),
		)
	}

	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "%-*s %31s\n", titleColLen, "TOTAL", sale.Total.StringFixed(2))
	fmt.Fprintln(&b, rule)

	return b.String(), nil
}

func customerLabel(sale *domain.Sale) string {
	if sale.CustomerName == nil {
		return noCustomer
	}
	return *sale.CustomerName
}

// clip shortens a title to the column width, marking the cut with an
// ellipsis so columns stay aligned.
func clip(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
