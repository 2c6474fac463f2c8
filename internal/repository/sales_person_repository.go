package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/unclebandit/mailerbot-backend/internal/db"
	"github.com/unclebandit/mailerbot-backend/internal/model"
)

type SalesPersonRepositoryInterface interface {
	GetByName(ctx context.Context, name string) (*model.SalesPerson, error)
}

type SalesPersonRepository struct {
	DB  *sql.DB
	Log *slog.Logger
}

// GetByName fetches the sender identity for a campaign. Returns nil, nil
// when no row matches so the caller can skip the campaign.
func (r *SalesPersonRepository) GetByName(ctx context.Context, name string) (*model.SalesPerson, error) {
	query := `SELECT sales_person_name, email_id FROM sales_person_data WHERE sales_person_name = $1`
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	var p model.SalesPerson
	err := r.DB.QueryRowContext(ctx, query, name).Scan(&p.SalesPersonName, &p.EmailID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // not found
		}
		return nil, failQuery(r.Log, "Sales Person Data Retrieval", query, err)
	}
	return &p, nil
}

var _ SalesPersonRepositoryInterface = (*SalesPersonRepository)(nil)
