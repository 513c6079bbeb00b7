// Package app wires the application together: configuration, logging,
// database, services, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bookstore-orm/backend/internal/adapter/postgres"
	auditrepo "github.com/bookstore-orm/backend/internal/adapter/postgres/audit"
	bookrepo "github.com/bookstore-orm/backend/internal/adapter/postgres/book"
	salerepo "github.com/bookstore-orm/backend/internal/adapter/postgres/sale"
	userrepo "github.com/bookstore-orm/backend/internal/adapter/postgres/user"
	"github.com/bookstore-orm/backend/internal/config"
	"github.com/bookstore-orm/backend/internal/service/catalog"
	"github.com/bookstore-orm/backend/internal/service/directory"
	"github.com/bookstore-orm/backend/internal/service/invoice"
	"github.com/bookstore-orm/backend/internal/service/ledger"
	"github.com/bookstore-orm/backend/internal/service/report"
	"github.com/bookstore-orm/backend/internal/transport/middleware"
	"github.com/bookstore-orm/backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, builds the services, and serves HTTP until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	books := bookrepo.New(pool)
	users := userrepo.New(pool)
	sales := salerepo.New(pool)
	audit := auditrepo.New(pool)
	txm := postgres.NewTxManager(pool)

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
		Health:  rest.NewHealthHandler(pool, BuildVersion()),
	})

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
