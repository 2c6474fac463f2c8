// internal/model/content.go
package model

// Content is one row of content_data: the subject and body templates a
// campaign renders per recipient. Read-only to this service.
type Content struct {
	ContentID string `db:"content_id" json:"content_id"`
	Subject   string `db:"subject" json:"subject"`
	Body      string `db:"body" json:"body"`
}
