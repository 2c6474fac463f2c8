// internal/model/recipient.go
package model

// Recipient is one row of campaign_data: a single address inside a campaign
// file. Eligibility (record_status, unsubscribe, wrong_id all zero) is
// filtered in the repository, so only the columns the mail build needs are
// carried here.
type Recipient struct {
	CampaignFileName string `db:"campaign_filename" json:"campaign_filename"`
	EmailAddress     string `db:"email_address" json:"email_address"`
	FirstName        string `db:"first_name" json:"first_name"`
	Company          string `db:"company" json:"company"`
	Industry         string `db:"industry" json:"industry"`
	Title            string `db:"title" json:"title"`
}
