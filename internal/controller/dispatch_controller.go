// internal/controller/dispatch_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	appErrors "github.com/unclebandit/mailerbot-backend/internal/errors"
	"github.com/unclebandit/mailerbot-backend/internal/mailer"
	"github.com/unclebandit/mailerbot-backend/internal/service"
)

type DispatchController struct {
	DispatchService *service.DispatchService
	Provider        mailer.ProviderClient
	TestRecipient   string
	TestSender      string
}

// ExtractDataAndSendMail runs one dispatch pass and reports the aggregate
// outcome: per-campaign counts plus the summed total.
func (c *DispatchController) ExtractDataAndSendMail(w http.ResponseWriter, r *http.Request) {
	result, err := c.DispatchService.Run(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, appErrors.ErrNoCampaigns):
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"status":  "Error",
				"message": "No campaigns found",
			})
		case errors.Is(err, appErrors.ErrDispatchInProgress):
			writeJSON(w, http.StatusConflict, map[string]interface{}{
				"success": false,
				"message": "Dispatch already in progress",
			})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"message": "Unexpected error in campaign processing",
				"error":   err.Error(),
			})
		}
		return
	}

	if len(result.Campaigns) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "No campaigns processed",
			"count":   0,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Emails sent successfully",
		"count":     result.TotalSent,
		"campaigns": result.Campaigns,
	})
}

// TestMail sends a single diagnostic mail to the configured notification
// recipient so operators can verify the provider key without touching a
// campaign.
func (c *DispatchController) TestMail(w http.ResponseWriter, r *http.Request) {
	if c.TestRecipient == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "No notification recipient configured",
		})
		return
	}

	n := mailer.Notification{
		To:      []string{c.TestRecipient},
		From:    c.TestSender,
		Subject: "Mailer Bot - Info Mail",
		HTML:    "Hello",
	}
	if err := c.Provider.SendNotification(r.Context(), n); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Unexpected error in personal mail sending",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Emails sent successfully",
		"count":   1,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
