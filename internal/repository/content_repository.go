package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/unclebandit/mailerbot-backend/internal/db"
	"github.com/unclebandit/mailerbot-backend/internal/model"
)

type ContentRepositoryInterface interface {
	GetByID(ctx context.Context, contentID string) (*model.Content, error)
}

type ContentRepository struct {
	DB  *sql.DB
	Log *slog.Logger
}

// GetByID fetches the content templates for a campaign. Returns nil, nil
// when no row matches so the caller can skip the campaign.
func (r *ContentRepository) GetByID(ctx context.Context, contentID string) (*model.Content, error) {
	query := `SELECT content_id, subject, body FROM content_data WHERE content_id = $1`
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	var c model.Content
	err := r.DB.QueryRowContext(ctx, query, contentID).Scan(&c.ContentID, &c.Subject, &c.Body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // not found
		}
		return nil, failQuery(r.Log, "Content Data Retrieval", query, err)
	}
	return &c, nil
}

var _ ContentRepositoryInterface = (*ContentRepository)(nil)
