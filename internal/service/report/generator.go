// Package report builds per-period sales reports. A report covers one
// calendar bucket (month, quarter, or year) and is handed to a
// DocumentWriter for rendering, so output formats stay pluggable.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookstore-orm/backend/internal/domain"
)

type salesReader interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Sale, error)
}

// Row is one sale inside a report.
type Row struct {
	SaleID   string
	Date     time.Time
	Customer string
	Units    int
	Total    decimal.Decimal
}

// Report is the aggregate for one calendar period. Revenue is the exact sum
// of the stored sale totals.
type Report struct {
	Period    domain.Period
	From      time.Time
	To        time.Time
	Rows      []Row
	SaleCount int
	UnitsSold int
	Revenue   decimal.Decimal
}

// DocumentWriter renders a report into a finished document.
type DocumentWriter interface {
	WriteDocument(r *Report) ([]byte, error)
}

// Generator assembles reports from the sale ledger.
type Generator struct {
	sales  salesReader
	writer DocumentWriter
	log    *slog.Logger
}

// NewGenerator creates a new report Generator.
func NewGenerator(log *slog.Logger, sales salesReader, writer DocumentWriter) *Generator {
	return &Generator{
		sales:  sales,
		writer: writer,
		log:    log.With("service", "report"),
	}
}

// Build collects the sales of the calendar bucket containing asOf and
// aggregates them into a Report. The bucket is half-open: a sale created
// exactly at the period's end belongs to the next period.
func (g *Generator) Build(ctx context.Context, period domain.Period, asOf time.Time) (*Report, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	from, to := period.Range(asOf)

	sales, err := g.sales.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	r := &Report{
		Period:  period,
		From:    from,
		To:      to,
		Rows:    make([]Row, 0, len(sales)),
		Revenue: decimal.Zero,
	}

	for _, s := range sales {
		units := 0
		for _, l := range s.Lines {
			units += l.Quantity
		}

		customer := ""
		if s.CustomerName != nil {
			customer = *s.CustomerName
		}

		r.Rows = append(r.Rows, Row{
			SaleID:   s.ID.String(),
			Date:     s.CreatedAt,
			Customer: customer,
			Units:    units,
			Total:    s.Total,
		})
		r.SaleCount++
		r.UnitsSold += units
		r.Revenue = r.Revenue.Add(s.Total)
	}

	return r, nil
}

// Generate builds the report and renders it with the configured writer.
func (g *Generator) Generate(ctx context.Context, period domain.Period, asOf time.Time) ([]byte, error) {
	r, err := g.Build(ctx, period, asOf)
	if err != nil {
		return nil, err
	}

	doc, err := g.writer.WriteDocument(r)
	if err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	g.log.InfoContext(ctx, "report generated",
		slog.String("period", string(period)),
		slog.Time("from", r.From),
		slog.Time("to", r.To),
		slog.Int("sales", r.SaleCount),
	)

	return doc, nil
}
