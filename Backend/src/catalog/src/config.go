package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	HTTPAddr        string
	GRPCAddr        string
	DBDriver        string
	DBPath          string
	SeedOnStart     bool
	CacheSize       int
	AllowedOrigins  []string
	RabbitURL       string
	RabbitExchange  string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	LogLevel        string
	LogFormat       string
}

// LoadConfig reads the environment, after loading .env when there is one.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:        getenv("CATALOG_HTTP_ADDR", ":5191"),
		GRPCAddr:        getenv("CATALOG_GRPC_ADDR", ""),
		DBDriver:        getenv("CATALOG_DB_DRIVER", driverModernc),
		DBPath:          getenv("CATALOG_DB_PATH", "./data/catalog.db"),
		SeedOnStart:     getenv("CATALOG_SEED", "true") == "true",
		CacheSize:       getenvInt("CATALOG_CACHE_SIZE", 256),
		AllowedOrigins:  splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		RabbitURL:       getenv("RABBIT_URL", ""),
		RabbitExchange:  getenv("RABBIT_EXCHANGE", "domain_events"),
		RequestTimeout:  getenvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxBodyBytes:    1 << 20,
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "console"),
	}
}

func setupLogger(cfg Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogFormat != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
