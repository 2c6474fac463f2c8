// Package repository is the query gateway: every statement the service runs
// against the relational store goes through here, parameterized, bounded by
// the fixed query timeout, and wrapped in a DatabaseError on failure.
package repository

import (
	"log/slog"

	appErrors "github.com/unclebandit/mailerbot-backend/internal/errors"
)

// failQuery logs a driver-level failure with the query text and wraps it for
// the caller.
func failQuery(log *slog.Logger, op, query string, err error) error {
	log.Error("database query error",
		slog.String("context", op),
		slog.String("query", query),
		slog.String("error", err.Error()),
	)
	return appErrors.NewDatabaseError(op, err)
}
