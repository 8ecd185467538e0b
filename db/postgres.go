package db

import (
	"database/sql"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// Connect opens the report archive database from DATABASE_URL. Callers that
// treat the archive as optional should check the URL first via Configured.
func Connect() error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		slog.Warn("DATABASE_URL environment variable is not set")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

// Configured reports whether a database URL is present in the environment.
func Configured() bool {
	return os.Getenv("DATABASE_URL") != ""
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}
