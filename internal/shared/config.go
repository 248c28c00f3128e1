package shared

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	DBDriver    string // mysql|sqlite3|pgx
	DBDSN       string
	ModelPath   string
	ColumnsPath string
	StaticDir   string // served at /static/
	UploadDir   string // always STATIC_DIR/uploads
	ChartsDir   string // always STATIC_DIR/charts
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	RabbitURL   string
	Exchange    string
	WriteRPS    int
	SeedOnStart bool
}

func Load() Config {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	static := env("STATIC_DIR", "static")
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		DBDriver:    env("DB_DRIVER", "mysql"),
		DBDSN:       env("DB_DSN", "root:root@tcp(localhost:3306)/propwise?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		ModelPath:   env("MODEL_PATH", "model/model.json"),
		ColumnsPath: env("COLUMNS_PATH", "model/columns.json"),
		StaticDir:   static,
		UploadDir:   filepath.Join(static, "uploads"),
		ChartsDir:   filepath.Join(static, "charts"),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		RabbitURL:   env("RABBITMQ_URL", ""),
		Exchange:    env("INQUIRY_EXCHANGE", "propwise.events"),
		WriteRPS:    atoi("WRITE_RPS", 5),
		SeedOnStart: env("SEED_ON_START", "false") == "true",
	}
	if c.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR is empty; location cache disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
