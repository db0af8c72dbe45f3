package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/educagestor/educagestor/internal/adminctl"
	"github.com/educagestor/educagestor/internal/server/config"
	"github.com/educagestor/educagestor/internal/server/repositories/repomanager"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	if _, err := adminctl.Bootstrap(ctx, db, m, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

}
