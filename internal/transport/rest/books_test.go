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
	"github.com/shopspring/decimal"

	"github.com/bookstore-orm/backend/internal/domain"
	"github.com/bookstore-orm/backend/internal/service/catalog"
)

type catalogServiceMock struct {
	AddBookFunc     func(ctx context.Context, input catalog.AddBookInput) (*domain.Book, error)
	ListBooksFunc   func(ctx context.Context) ([]*domain.Book, error)
	GetBookFunc     func(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	UpdateStockFunc func(ctx context.Context, id uuid.UUID, input catalog.UpdateStockInput) error
	DeleteBookFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *catalogServiceMock) AddBook(ctx context.Context, input catalog.AddBookInput) (*domain.Book, error) {
	return m.AddBookFunc(ctx, input)
}

func (m *catalogServiceMock) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return m.ListBooksFunc(ctx)
}

func (m *catalogServiceMock) GetBook(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return m.GetBookFunc(ctx, id)
}

func (m *catalogServiceMock) UpdateStock(ctx context.Context, id uuid.UUID, input catalog.UpdateStockInput) error {
	return m.UpdateStockFunc(ctx, id, input)
}

func (m *catalogServiceMock) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return m.DeleteBookFunc(ctx, id)
}

func testRouterWithBooks(svc catalogService) http.Handler {
	mux := http.NewServeMux()
	h := NewBookHandler(svc, slog.Default())
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books/{id}", h.Get)
	mux.HandleFunc("PATCH /books/{id}/stock", h.UpdateStock)
	mux.HandleFunc("DELETE /books/{id}", h.Delete)
	return mux
}

func TestBookCreate_Success(t *testing.T) {
	t.Parallel()

	svc := &catalogServiceMock{AddBookFunc: func(_ context.Context, input catalog.AddBookInput) (*domain.Book, error) {
		return &domain.Book{
			ID:     uuid.New(),
			Title:  input.Title,
			Author: input.Author,
			Stock:  input.Stock,
			Price:  input.Price,
		}, nil
	}}

	body := `{"title":"Dune","author":"Frank Herbert","stock":5,"price":"9.99"}`
	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(body))
	rec := httptest.NewRecorder()

	testRouterWithBooks(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp bookResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Title != "Dune" {
		t.Errorf("title: got %q", resp.Title)
	}
	if !resp.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("price: got %s", resp.Price)
	}
}

func TestBookCreate_ValidationError(t *testing.T) {
	t.Parallel()

	svc := &catalogServiceMock{AddBookFunc: func(context.Context, catalog.AddBookInput) (*domain.Book, error) {
		return nil, domain.NewValidationError("title", "must not be empty")
	}}

	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":""}`))
	rec := httptest.NewRecorder()

	testRouterWithBooks(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Fields) != 1 || resp.Fields[0].Field != "title" {
		t.Errorf("fields: %+v", resp.Fields)
	}
}

func TestBookCreate_MalformedJSON(t *testing.T) {
	t.Parallel()

	svc := &catalogServiceMock{}

	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	testRouterWithBooks(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestBookCreate_DuplicateISBN(t *testing.T) {
	t.Parallel()

	svc := &catalogServiceMock{AddBookFunc: func(context.Context, catalog.AddBookInput) (*domain.Book, error) {
		return nil, domain.ErrAlreadyExists
	}}

	body := `{"title":"Dune","author":"Frank Herbert","isbn":"978-0441013593"}`
	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(body))
	rec := httptest.NewRecorder()

	testRouterWithBooks(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestBookGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := &catalogServiceMock{GetBookFunc: func(context.Context, uuid.UUID) (*domain.Book, error) {
		return nil, domain.ErrNotFound
	}}

	req := httptest.NewRequest(http.MethodGet, "/books/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()

	testRouterWithBooks(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestBookGet_BadID(t *testing.T) {
	t.Parallel()

	svc := &catalogServiceMock{}

	req := httptest.NewRequest(http.MethodGet, "/books/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	testRouterWithBooks(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestBookUpdateStock_Success(t *testing.T) {
	t.Parallel()

	var gotStock int
	svc := &catalogServiceMock{UpdateStockFunc: func(_ context.Context, _ uuid.UUID, input catalog.UpdateStockInput) error {
		gotStock = input.Stock
		return nil
	}}

	req := httptest.NewRequest(http.MethodPatch, "/books/"+uuid.New().String()+"/stock", strings.NewReader(`{"stock":42}`))
	rec := httptest.NewRecorder()

	testRouterWithBooks(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if gotStock != 42 {
		t.Errorf("stock: got %d, want 42", gotStock)
	}
}

func TestBookDelete_Success(t *testing.T) {
	t.Parallel()

	svc := &catalogServiceMock{DeleteBookFunc: func(context.Context, uuid.UUID) error { return nil }}

	req := httptest.NewRequest(http.MethodDelete, "/books/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()

	testRouterWithBooks(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}
