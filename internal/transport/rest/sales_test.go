package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
	"github.com/bookstore-orm/backend/internal/service/ledger"
)

type ledgerServiceMock struct {
	CreateSaleFunc func(ctx context.Context, input ledger.CreateSaleInput) (*domain.Sale, error)
	GetSaleFunc    func(ctx context.Context, id uuid.UUID) (*domain.Sale, bool, error)
	ListSalesFunc  func(ctx context.Context) ([]*domain.Sale, error)
}

func (m *ledgerServiceMock) CreateSale(ctx context.Context, input ledger.CreateSaleInput) (*domain.Sale, error) {
	return m.CreateSaleFunc(ctx, input)
}

func (m *ledgerServiceMock) GetSale(ctx context.Context, id uuid.UUID) (*domain.Sale, bool, error) {
	return m.GetSaleFunc(ctx, id)
}

func (m *ledgerServiceMock) ListSales(ctx context.Context) ([]*domain.Sale, error) {
	return m.ListSalesFunc(ctx)
}

type invoiceRendererMock struct {
	RenderFunc func(ctx context.Context, saleID uuid.UUID) (string, error)
}

func (m *invoiceRendererMock) Render(ctx context.Context, saleID uuid.UUID) (string, error) {
	return m.RenderFunc(ctx, saleID)
}

func testRouterWithSales(svc ledgerService, inv invoiceRenderer) http.Handler {
	mux := http.NewServeMux()
	h := NewSaleHandler(svc, inv, slog.Default())
	mux.HandleFunc("POST /sales", h.Create)
	mux.HandleFunc("GET /sales/{id}", h.Get)
	mux.HandleFunc("GET /sales/{id}/invoice", h.Invoice)
	return mux
}

func TestSaleCreate_Success(t *testing.T) {
	t.Parallel()

	bookID := uuid.New()
	svc := &ledgerServiceMock{CreateSaleFunc: func(_ context.Context, input ledger.CreateSaleInput) (*domain.Sale, error) {
		sale := &domain.Sale{ID: uuid.New(), CustomerName: input.CustomerName}
		for i, item := range input.Items {
			sale.Lines = append(sale.Lines, domain.SaleLine{
				Position: i,
				BookID:   item.BookID,
				Quantity: item.Quantity,
			})
		}
		sale.Total = sale.ComputeTotal()
		return sale, nil
	}}

	body := `{"customer_name":"Paul","items":[{"book_id":"` + bookID.String() + `","quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()

	testRouterWithSales(svc, &invoiceRendererMock{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp saleResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Lines) != 1 || resp.Lines[0].BookID != bookID || resp.Lines[0].Quantity != 2 {
		t.Errorf("lines: %+v", resp.Lines)
	}
	if resp.CustomerName == nil || *resp.CustomerName != "Paul" {
		t.Errorf("customer: %v", resp.CustomerName)
	}
}

func TestSaleCreate_InsufficientStock(t *testing.T) {
	t.Parallel()

	svc := &ledgerServiceMock{CreateSaleFunc: func(context.Context, ledger.CreateSaleInput) (*domain.Sale, error) {
		return nil, &domain.InsufficientStockError{
			BookID:    uuid.New(),
			Title:     "Dune",
			Requested: 5,
			Available: 2,
		}
	}}

	body := `{"items":[{"book_id":"` + uuid.New().String() + `","quantity":5}]}`
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()

	testRouterWithSales(svc, &invoiceRendererMock{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "insufficient stock") {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestSaleGet_Missing404(t *testing.T) {
	t.Parallel()

	svc := &ledgerServiceMock{GetSaleFunc: func(context.Context, uuid.UUID) (*domain.Sale, bool, error) {
		return nil, false, nil
	}}

	req := httptest.NewRequest(http.MethodGet, "/sales/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()

	testRouterWithSales(svc, &invoiceRendererMock{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestSaleInvoice_PlainText(t *testing.T) {
	t.Parallel()

	inv := &invoiceRendererMock{RenderFunc: func(_ context.Context, saleID uuid.UUID) (string, error) {
		return "INVOICE\nSale: " + saleID.String() + "\n", nil
	}}

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/sales/"+id.String()+"/invoice", nil)
	rec := httptest.NewRecorder()

	testRouterWithSales(&ledgerServiceMock{}, inv).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type: %q", ct)
	}
	if !strings.Contains(rec.Body.String(), id.String()) {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestSaleInvoice_Missing404(t *testing.T) {
	t.Parallel()

	inv := &invoiceRendererMock{RenderFunc: func(context.Context, uuid.UUID) (string, error) {
		return "", domain.ErrNotFound
	}}

	req := httptest.NewRequest(http.MethodGet, "/sales/"+uuid.New().String()+"/invoice", nil)
	rec := httptest.NewRecorder()

	testRouterWithSales(&ledgerServiceMock{}, inv).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
