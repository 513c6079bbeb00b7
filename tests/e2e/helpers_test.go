//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/bookstore-orm/backend/internal/adapter/postgres"
	auditrepo "github.com/bookstore-orm/backend/internal/adapter/postgres/audit"
	bookrepo "github.com/bookstore-orm/backend/internal/adapter/postgres/book"
	salerepo "github.com/bookstore-orm/backend/internal/adapter/postgres/sale"
	"github.com/bookstore-orm/backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/bookstore-orm/backend/internal/adapter/postgres/user"
	"github.com/bookstore-orm/backend/internal/service/catalog"
	"github.com/bookstore-orm/backend/internal/service/directory"
	"github.com/bookstore-orm/backend/internal/service/invoice"
	"github.com/bookstore-orm/backend/internal/service/ledger"
	"github.com/bookstore-orm/backend/internal/service/report"
	"github.com/bookstore-orm/backend/internal/transport/middleware"
	"github.com/bookstore-orm/backend/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	books := bookrepo.New(pool)
	users := userrepo.New(pool)
	sales := salerepo.New(pool)
	audit := auditrepo.New(pool)

	catalogSvc := catalog.NewService(logger, books, audit, txm)
	directorySvc := directory.NewService(logger, users, audit, txm)
	ledgerSvc := ledger.NewService(logger, books, users, sales, audit, txm)
	invoices := invoice.NewFormatter(sales, books)
	reports := report.NewGenerator(logger, sales, report.NewCSVWriter())

	mux := rest.NewRouter(rest.Handlers{
		Books:   rest.NewBookHandler(catalogSvc, logger),
		Users:   rest.NewUserHandler(directorySvc, logger),
		Sales:   rest.NewSaleHandler(ledgerSvc, invoices, logger),
		Reports: rest.NewReportHandler(reports, logger),
		Health:  rest.NewHealthHandler(pool, "e2e"),
	})

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// postJSON sends a JSON POST and decodes the response body into out (if
// non-nil). Returns the status code.
func postJSON(t *testing.T, ts *testServer, path string, body any, out any) int {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := ts.Client.Post(ts.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// getJSON sends a GET and decodes the JSON response into out. Returns the
// status code.
func getJSON(t *testing.T, ts *testServer, path string, out any) int {
	t.Helper()

	resp, err := ts.Client.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// getText sends a GET and returns status code and the raw response body.
func getText(t *testing.T, ts *testServer, path string) (int, string) {
	t.Helper()

	resp, err := ts.Client.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func doRequest(t *testing.T, ts *testServer, method, path string, body any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

// createBook creates a book over the API and returns its id.
func createBook(t *testing.T, ts *testServer, title string, stock int, price string) uuid.UUID {
	t.Helper()

	var resp struct {
		ID uuid.UUID `json:"id"`
	}
	status := postJSON(t, ts, "/books", map[string]any{
		"title":  title,
		"author": "Test Author",
		"stock":  stock,
		"price":  price,
	}, &resp)
	require.Equal(t, http.StatusCreated, status)
	return resp.ID
}

// createUser creates a directory user over the API and returns its id.
func createUser(t *testing.T, ts *testServer, name string) uuid.UUID {
	t.Helper()

	var resp struct {
		ID uuid.UUID `json:"id"`
	}
	status := postJSON(t, ts, "/users", map[string]any{"name": name}, &resp)
	require.Equal(t, http.StatusCreated, status)
	return resp.ID
}

// currentStock reads a book's stock straight from the database.
func currentStock(t *testing.T, ts *testServer, bookID uuid.UUID) int {
	t.Helper()

	var stock int
	err := ts.Pool.QueryRow(t.Context(),
		"SELECT stock FROM books WHERE id = $1", bookID,
	).Scan(&stock)
	require.NoError(t, err)
	return stock
}
