// internal/model/campaign.go
package model

// Campaign status values in schedule_campaign.
const (
	CampaignPending   = 0
	CampaignProcessed = 1
)

// ScheduledCampaign is one row of schedule_campaign. StartDate is ISO-8601
// (2006-01-02) and StartTime is HH:MM; the two combine into the moment the
// campaign becomes due.
type ScheduledCampaign struct {
	ID              int    `db:"id" json:"id"`
	CampaignID      string `db:"campaign_id" json:"campaign_id"`
	ContentID       string `db:"content_id" json:"content_id"`
	SalesPersonName string `db:"sales_person_name" json:"sales_person_name"`
	StartDate       string `db:"start_date" json:"start_date"`
	StartTime       string `db:"start_time" json:"start_time"`
	Status          int    `db:"status" json:"status"`
	TotalSentMails  int    `db:"total_sent_mails" json:"total_sent_mails"`
}
