package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Load() App {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using process environment")
	}

	cfg := App{
		Port:        getenv("APP_PORT", "8080"),
		DatabaseURL: must("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET", "local_dev_secret"),
		Env:         getenv("APP_ENV", "dev"),

		DueDays:            getint("BORROW_DUE_DAYS", 14),
		MaxExtensionDays:   getint("BORROW_MAX_EXTENSION_DAYS", 7),
		MonthlyRequestCap:  getint("BORROW_MONTHLY_REQUEST_CAP", 3),
		MaxBooksPerRequest: getint("BORROW_MAX_BOOKS_PER_REQUEST", 5),
		StrictInventory:    getbool("BORROW_STRICT_INVENTORY", false),
		WebhookURL:         os.Getenv("NOTIFY_WEBHOOK_URL"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("invalid int env, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		slog.Warn("invalid bool env, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
