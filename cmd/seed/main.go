package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"propwise/internal/adapters/observability"
	"propwise/internal/shared"
	"propwise/internal/storage/sqlstore"
)

// seed creates the schema and loads the starter listings into an empty store.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Str("driver", cfg.DBDriver).Msg("seed starting")

	db, err := sql.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	repo, err := sqlstore.New(db, cfg.DBDriver)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	n, err := repo.Seed(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	if n == 0 {
		log.Info().Msg("properties table not empty; nothing seeded")
		return
	}
	log.Info().Int("rows", n).Msg("seed completed")
}
