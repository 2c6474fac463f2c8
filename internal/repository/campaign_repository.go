package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/unclebandit/mailerbot-backend/internal/db"
	"github.com/unclebandit/mailerbot-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	ListPending(ctx context.Context) ([]*model.ScheduledCampaign, error)
	MarkProcessed(ctx context.Context, id, totalSentMails int) error
	AcquireDispatchLock(ctx context.Context) (release func(), ok bool, err error)
}

type CampaignRepository struct {
	DB  *sql.DB
	Log *slog.Logger
}

// dispatchLockKey identifies the advisory lock that serializes dispatch
// passes across overlapping triggers (HTTP and cron).
const dispatchLockKey = 824001

// ListPending returns every unprocessed campaign in scheduled order.
func (r *CampaignRepository) ListPending(ctx context.Context) ([]*model.ScheduledCampaign, error) {
	query := `
        SELECT id, campaign_id, content_id, sales_person_name, start_date, start_time, status, total_sent_mails
        FROM schedule_campaign
        WHERE status = $1
        ORDER BY start_date ASC, start_time ASC
    `
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, query, model.CampaignPending)
	if err != nil {
		return nil, failQuery(r.Log, "Campaign Details Retrieval", query, err)
	}
	defer rows.Close()

	campaigns := []*model.ScheduledCampaign{}
	for rows.Next() {
		c := &model.ScheduledCampaign{}
		if err := rows.Scan(&c.ID, &c.CampaignID, &c.ContentID, &c.SalesPersonName,
			&c.StartDate, &c.StartTime, &c.Status, &c.TotalSentMails); err != nil {
			return nil, failQuery(r.Log, "Campaign Details Retrieval", query, err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, failQuery(r.Log, "Campaign Details Retrieval", query, err)
	}
	return campaigns, nil
}

// MarkProcessed flips a campaign to processed and records how many mails
// went out for it.
func (r *CampaignRepository) MarkProcessed(ctx context.Context, id, totalSentMails int) error {
	query := `UPDATE schedule_campaign SET status = $1, total_sent_mails = $2 WHERE id = $3`
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	if _, err := r.DB.ExecContext(ctx, query, model.CampaignProcessed, totalSentMails, id); err != nil {
		return failQuery(r.Log, "Campaign Status Update", query, err)
	}
	return nil
}

// AcquireDispatchLock claims the advisory lock for a dispatch pass. Advisory
// locks are session-scoped, so the claiming connection is pinned until
// release is called. ok=false means another pass holds the lock.
func (r *CampaignRepository) AcquireDispatchLock(ctx context.Context) (func(), bool, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, false, failQuery(r.Log, "Dispatch Lock Acquire", "pg_try_advisory_lock", err)
	}

	var got bool
	if err := conn.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, dispatchLockKey).Scan(&got); err != nil {
		conn.Close()
		return nil, false, failQuery(r.Log, "Dispatch Lock Acquire", "pg_try_advisory_lock", err)
	}
	if !got {
		conn.Close()
		return nil, false, nil
	}

	release := func() {
		if _, err := conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, dispatchLockKey); err != nil {
			r.Log.Warn("failed to release dispatch lock", slog.String("error", err.Error()))
		}
		conn.Close()
	}
	return release, true, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
