package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies all pending goose migrations from dir. It opens
// its own database/sql connection because goose does not speak pgxpool.
func RunMigrations(databaseURL, dir string) error {
	conn, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open database for migrations: %w", err)
	}
	defer conn.Close()

	if err := goose.Up(conn, dir); err != nil {
		return fmt.Errorf("apply migrations from %s: %w", dir, err)
	}

	return nil
}
