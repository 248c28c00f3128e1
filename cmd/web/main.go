package main

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"propwise/internal/adapters/charts"
	server "propwise/internal/adapters/http_server"
	"propwise/internal/adapters/notify"
	"propwise/internal/adapters/observability"
	"propwise/internal/adapters/pricemodel"
	redisad "propwise/internal/adapters/redis"
	"propwise/internal/adapters/uploads"
	"propwise/internal/app"
	"propwise/internal/domain"
	"propwise/internal/shared"
	"propwise/internal/storage/sqlstore"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sql.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("sql.Open failed")
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database connection ok")

	repo, err := sqlstore.New(db, cfg.DBDriver)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	if cfg.SeedOnStart {
		n, err := repo.Seed(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
		log.Info().Int("rows", n).Msg("seed done")
	}

	// model
	model, err := pricemodel.Load(cfg.ModelPath, cfg.ColumnsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("model load failed")
	}
	log.Info().Int("columns", len(model.Columns())).Strs("locations", model.Locations()).Msg("price model loaded")

	// deps
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	var notifier domain.InquiryNotifier = notify.Noop{}
	if cfg.RabbitURL != "" {
		pub, err := notify.Dial(cfg.RabbitURL, cfg.Exchange)
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq unavailable; inquiry notifications disabled")
		} else {
			defer pub.Close()
			notifier = pub
		}
	}

	renderer, err := charts.New(cfg.ChartsDir, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("charts dir")
	}
	images, err := uploads.New(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload dir")
	}
	views, err := server.LoadViews()
	if err != nil {
		log.Fatal().Err(err).Msg("templates")
	}

	listings := app.NewListingService(repo, model, cache, cfg.CacheTTL, images, notifier)
	analytics := app.NewAnalyticsService(repo, model, renderer)

	// http
	srv := server.New(cfg.WriteRPS)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Listings: listings, Analytics: analytics, Views: views}, cfg.StaticDir)

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("web listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("web stopped")
}
