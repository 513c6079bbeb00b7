package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bookstore-orm/backend/internal/domain"
)

type reportGenerator interface {
	Generate(ctx context.Context, period domain.Period, asOf time.Time) ([]byte, error)
}

// ReportHandler serves the sales report endpoint.
type ReportHandler struct {
	reports reportGenerator
	log     *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reports reportGenerator, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		log:     logger.With("handler", "reports"),
	}
}

// Generate handles GET /reports?period=monthly&as_of=2026-03-14.
// as_of defaults to the current time; the report covers the calendar
// bucket containing it.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	period, err := domain.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	asOf := time.Now().UTC()
	if v := r.URL.Query().Get("as_of"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeDomainError(r.Context(), w, h.log,
				domain.NewValidationError("as_of", "must be a date in YYYY-MM-DD form"))
			return
		}
		asOf = parsed
	}

	doc, err := h.reports.Generate(r.Context(), period, asOf)
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sales-report.csv\"")
	w.WriteHeader(http.StatusOK)
	w.Write(doc) //nolint:errcheck
}
