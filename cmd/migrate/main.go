// Command migrate applies the SQL migrations from the migrations directory.
//
// Flags:
//
//	--dir     migrations directory (default: ./migrations)
//	--down    roll back the most recent migration instead of applying
//
// Requires DATABASE_DSN environment variable to be set.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	dir := flag.String("dir", "./migrations", "migrations directory")
	down := flag.Bool("down", false, "roll back the most recent migration")
	flag.Parse()

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(*dir))
	if err != nil {
		log.Fatalf("create migration provider: %v", err)
	}

	if *down {
		result, err := provider.Down(ctx)
		if err != nil {
			log.Fatalf("roll back migration: %v", err)
		}
		fmt.Printf("Rolled back %s.\n", result.Source.Path)
		return
	}

	results, err := provider.Up(ctx)
	if err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	if len(results) == 0 {
		fmt.Println("No pending migrations.")
		return
	}
	for _, r := range results {
		fmt.Printf("Applied %s (%s).\n", r.Source.Path, r.Duration)
	}
}
