package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/unclebandit/mailerbot-backend/internal/db"
	"github.com/unclebandit/mailerbot-backend/internal/model"
)

type RecipientRepositoryInterface interface {
	ListEligible(ctx context.Context, campaignID string) ([]model.Recipient, error)
	StampProcessed(ctx context.Context, campaignID, contentID, salesPersonName string) (int64, error)
}

type RecipientRepository struct {
	DB  *sql.DB
	Log *slog.Logger
}

// ListEligible returns the recipients of a campaign file that have not been
// processed, have not unsubscribed, and are not flagged as bad addresses.
// Personalization columns can be NULL in imported files; they come back as
// empty strings.
func (r *RecipientRepository) ListEligible(ctx context.Context, campaignID string) ([]model.Recipient, error) {
	query := `
        SELECT campaign_filename, email_address,
               COALESCE(first_name, ''), COALESCE(company, ''),
               COALESCE(industry, ''), COALESCE(title, '')
        FROM campaign_data
        WHERE campaign_filename = $1 AND record_status = 0 AND unsubscribe = 0 AND wrong_id = 0
    `
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, failQuery(r.Log, "Campaign Data Retrieval", query, err)
	}
	defer rows.Close()

	recipients := []model.Recipient{}
	for rows.Next() {
		var rec model.Recipient
		if err := rows.Scan(&rec.CampaignFileName, &rec.EmailAddress,
			&rec.FirstName, &rec.Company, &rec.Industry, &rec.Title); err != nil {
			return nil, failQuery(r.Log, "Campaign Data Retrieval", query, err)
		}
		recipients = append(recipients, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, failQuery(r.Log, "Campaign Data Retrieval", query, err)
	}
	return recipients, nil
}

// StampProcessed marks the rows a successful send covered: same eligibility
// filter as ListEligible, stamped with the content, sales person and time of
// the dispatch. Returns the number of rows stamped.
func (r *RecipientRepository) StampProcessed(ctx context.Context, campaignID, contentID, salesPersonName string) (int64, error) {
	query := `
        UPDATE campaign_data
        SET content_id = $1, sales_person_name = $2, record_datetime = NOW()
        WHERE campaign_filename = $3 AND record_status = 0 AND unsubscribe = 0 AND wrong_id = 0
    `
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, query, contentID, salesPersonName, campaignID)
	if err != nil {
		return 0, failQuery(r.Log, "Campaign Data Update", query, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, failQuery(r.Log, "Campaign Data Update", query, err)
	}
	return affected, nil
}

var _ RecipientRepositoryInterface = (*RecipientRepository)(nil)
