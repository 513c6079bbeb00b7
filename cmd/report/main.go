// Command report generates a sales report for a calendar period and writes
// it as CSV. It is intended to be invoked by an external cron job or by an
// operator, not as an in-process goroutine.
//
// Flags:
//
//	--period  monthly, quarterly, or yearly (default: monthly)
//	--as-of   date inside the reporting period, YYYY-MM-DD (default: today)
//	--out     output file path (default: <output_dir>/report-<period>-<as-of>.csv)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bookstore-orm/backend/internal/adapter/postgres"
	salerepo "github.com/bookstore-orm/backend/internal/adapter/postgres/sale"
	"github.com/bookstore-orm/backend/internal/app"
	"github.com/bookstore-orm/backend/internal/config"
	"github.com/bookstore-orm/backend/internal/domain"
	"github.com/bookstore-orm/backend/internal/service/report"
)

func main() {
	periodFlag := flag.String("period", "monthly", "reporting period: monthly, quarterly, yearly")
	asOfFlag := flag.String("as-of", "", "date inside the reporting period (YYYY-MM-DD)")
	outFlag := flag.String("out", "", "output file path")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	period, err := domain.ParsePeriod(*periodFlag)
	if err != nil {
		logger.Error("invalid period", slog.String("error", err.Error()))
		os.Exit(1)
	}

	asOf := time.Now().UTC()
	if *asOfFlag != "" {
		asOf, err = time.Parse("2006-01-02", *asOfFlag)
		if err != nil {
			logger.Error("invalid as-of date", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	sales := salerepo.New(pool)
	generator := report.NewGenerator(logger, sales, report.NewCSVWriter())

	doc, err := generator.Generate(ctx, period, asOf)
	if err != nil {
		logger.Error("generate report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	out := *outFlag
	if out == "" {
		name := fmt.Sprintf("report-%s-%s.csv", period, asOf.Format("2006-01-02"))
		out = filepath.Join(cfg.Report.OutputDir, name)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		logger.Error("create output directory", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		logger.Error("write report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("report written",
		slog.String("path", out),
		slog.String("period", string(period)),
	)
}
