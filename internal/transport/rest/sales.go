package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookstore-orm/backend/internal/domain"
	"github.com/bookstore-orm/backend/internal/service/ledger"
)

type ledgerService interface {
	CreateSale(ctx context.Context, input ledger.CreateSaleInput) (*domain.Sale, error)
	GetSale(ctx context.Context, id uuid.UUID) (*domain.Sale, bool, error)
	ListSales(ctx context.Context) ([]*domain.Sale, error)
}

type invoiceRenderer interface {
	Render(ctx context.Context, saleID uuid.UUID) (string, error)
}

// SaleHandler serves the sale ledger endpoints, including invoices.
type SaleHandler struct {
	ledger   ledgerService
	invoices invoiceRenderer
	log      *slog.Logger
}

// NewSaleHandler creates a SaleHandler.
func NewSaleHandler(ledger ledgerService, invoices invoiceRenderer, logger *slog.Logger) *SaleHandler {
	return &SaleHandler{
		ledger:   ledger,
		invoices: invoices,
		log:      logger.With("handler", "sales"),
	}
}

type saleItemRequest struct {
	BookID   uuid.UUID `json:"book_id"`
	Quantity int       `json:"quantity"`
}

type saleRequest struct {
	CustomerName *string           `json:"customer_name,omitempty"`
	UserID       *uuid.UUID        `json:"user_id,omitempty"`
	Items        []saleItemRequest `json:"items"`
}

type saleLineResponse struct {
	Position  int             `json:"position"`
	BookID    uuid.UUID       `json:"book_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type saleResponse struct {
	ID           uuid.UUID          `json:"id"`
	CustomerName *string            `json:"customer_name,omitempty"`
	UserID       *uuid.UUID         `json:"user_id,omitempty"`
	Lines        []saleLineResponse `json:"lines"`
	Total        decimal.Decimal    `json:"total"`
	CreatedAt    time.Time          `json:"created_at"`
}

func toSaleResponse(s *domain.Sale) saleResponse {
	resp := saleResponse{
		ID:           s.ID,
		CustomerName: s.CustomerName,
		UserID:       s.UserID,
		Lines:        make([]saleLineResponse, 0, len(s.Lines)),
		Total:        s.Total,
		CreatedAt:    s.CreatedAt,
	}
	for _, l := range s.Lines {
		resp.Lines = append(resp.Lines, saleLineResponse{
			Position:  l.Position,
			BookID:    l.BookID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
	}
	return resp
}

// Create handles POST /sales.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	items := make([]ledger.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ledger.SaleItemInput{BookID: item.BookID, Quantity: item.Quantity})
	}

	sale, err := h.ledger.CreateSale(r.Context(), ledger.CreateSaleInput{
		CustomerName: req.CustomerName,
		UserID:       req.UserID,
		Items:        items,
	})
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSaleResponse(sale))
}

// List handles GET /sales.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	sales, err := h.ledger.ListSales(r.Context())
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	resp := make([]saleResponse, 0, len(sales))
	for _, s := range sales {
		resp = append(resp, toSaleResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /sales/{id}.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	sale, ok, err := h.ledger.GetSale(r.Context(), id)
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, toSaleResponse(sale))
}

// Invoice handles GET /sales/{id}/invoice. The response is plain text.
func (h *SaleHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	doc, err := h.invoices.Render(r.Context(), id)
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc)) //nolint:errcheck
}
