package rest

import "net/http"

// Handlers groups the REST handlers the router mounts.
type Handlers struct {
	Books   *BookHandler
	Users   *UserHandler
	Sales   *SaleHandler
	Reports *ReportHandler
	Health  *HealthHandler
}

// NewRouter builds the HTTP route table.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /books", h.Books.Create)
	mux.HandleFunc("GET /books", h.Books.List)
	mux.HandleFunc("GET /books/{id}", h.Books.Get)
	mux.HandleFunc("PATCH /books/{id}/stock", h.Books.UpdateStock)
	mux.HandleFunc("DELETE /books/{id}", h.Books.Delete)

	mux.HandleFunc("POST /users", h.Users.Create)
	mux.HandleFunc("GET /users", h.Users.List)
	mux.HandleFunc("GET /users/{id}", h.Users.Get)

	mux.HandleFunc("POST /sales", h.Sales.Create)
	mux.HandleFunc("GET /sales", h.Sales.List)
	mux.HandleFunc("GET /sales/{id}", h.Sales.Get)
	mux.HandleFunc("GET /sales/{id}/invoice", h.Sales.Invoice)

	mux.HandleFunc("GET /reports", h.Reports.Generate)

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /live", h.Health.Live)

	return mux
}
