package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

const csvTimeLayout = time.RFC3339

// CSVWriter renders reports as CSV: one row per sale, then a blank line and
// a summary block.
type CSVWriter struct{}

// NewCSVWriter creates a CSVWriter.
func NewCSVWriter() *CSVWriter { return &CSVWriter{} }

func (w *CSVWriter) WriteDocument(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	header := []string{"sale_id", "date", "customer", "units", "total"}
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, row := range r.Rows {
		record := []string{
			row.SaleID,
			row.Date.UTC().Format(csvTimeLayout),
			row.Customer,
			strconv.Itoa(row.Units),
			row.Total.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')

	summary := [][]string{
		{"period", string(r.Period)},
		{"from", r.From.UTC().Format(csvTimeLayout)},
		{"to", r.To.UTC().Format(csvTimeLayout)},
		{"sale_count", strconv.Itoa(r.SaleCount)},
		{"units_sold", strconv.Itoa(r.UnitsSold)},
		{"revenue", r.Revenue.StringFixed(2)},
	}
	for _, record := range summary {
		if err := cw.Write(record); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
