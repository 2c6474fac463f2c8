// internal/model/sales_person.go
package model

// SalesPerson is one row of sales_person_data: the sender identity a
// campaign's mails go out under. Read-only to this service.
type SalesPerson struct {
	SalesPersonName string `db:"sales_person_name" json:"sales_person_name"`
	EmailID         string `db:"email_id" json:"email_id"`
}
