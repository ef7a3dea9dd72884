package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Addr            string
	APIURL          string
	APITimeout      time.Duration
	SecureCookies   bool
	ShutdownTimeout time.Duration
	LogLevel        string
	LogFormat       string
}

func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Addr:            getenv("FRONTEND_CATALOG_ADDR", ":8081"),
		APIURL:          getenv("CATALOG_API_URL", "http://localhost:5191"),
		APITimeout:      getenvDuration("CATALOG_API_TIMEOUT", 3*time.Second),
		SecureCookies:   getenv("COOKIE_SECURE", "false") == "true",
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
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

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvDuration(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return d
	}
	return v
}
