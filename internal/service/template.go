// internal/service/template.go
package service

import (
	"strings"

	"github.com/unclebandit/mailerbot-backend/internal/model"
)

// RenderTemplate substitutes the recipient tokens into text. Every
// occurrence is replaced; a field missing from the record becomes an empty
// string. The tokens are disjoint literals, so replacement order does not
// matter.
func RenderTemplate(text string, r *model.Recipient) string {
	replacer := strings.NewReplacer(
		"[CN]", r.Company,
		"[IND]", r.Industry,
		"[TITLE]", r.Title,
		"[NAME]", r.FirstName,
		"[MAIL]", r.EmailAddress,
	)
	return replacer.Replace(text)
}
