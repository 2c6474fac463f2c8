// internal/db/db.go
package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/unclebandit/mailerbot-backend/internal/config"
)

// QueryTimeout bounds every statement the repositories issue. Campaign files
// can be large and the batch runs unattended, so this stays generous rather
// than risking a mid-pass cancellation.
const QueryTimeout = 50 * time.Minute

// Open connects to Postgres with the given settings and verifies the
// connection. The returned handle is constructed once at process start and
// shared for the process lifetime.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name,
	)

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return conn, nil
}
