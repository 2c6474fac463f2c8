// internal/service/dispatch_service.go
package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/unclebandit/mailerbot-backend/internal/errors"
	"github.com/unclebandit/mailerbot-backend/internal/mailer"
	"github.com/unclebandit/mailerbot-backend/internal/metrics"
	"github.com/unclebandit/mailerbot-backend/internal/model"
	"github.com/unclebandit/mailerbot-backend/internal/repository"
)

// lookAheadWindow makes the hourly batch pick up campaigns due before the
// next run, not only ones already past due.
const lookAheadWindow = time.Hour

const (
	brandedUnsubscribeURL = "https://www.silvertouchtech.co.uk/mailer-unsubscribe/?cemail="
	genericUnsubscribeURL = "https://www.silvertouch.com/unsubscribe-mailer/"
)

// EventPublisher receives a best-effort event after a campaign has been
// dispatched and its status written back.
type EventPublisher interface {
	PublishDispatched(campaignID, contentID string, sentMails int) error
}

type DispatchService struct {
	Campaigns   repository.CampaignRepositoryInterface
	Recipients  repository.RecipientRepositoryInterface
	Contents    repository.ContentRepositoryInterface
	SalesPeople repository.SalesPersonRepositoryInterface
	Sender      mailer.Sender
	Events      EventPublisher // optional
	Log         *slog.Logger
	Now         func() time.Time // defaults to time.Now
}

// CampaignResult is the outcome of one dispatched campaign within a pass.
type CampaignResult struct {
	CampaignID string `json:"campaign_id"`
	ContentID  string `json:"content_id"`
	SentMails  int    `json:"sent_mails"`
}

// DispatchResult aggregates a full pass: one entry per campaign that was
// actually dispatched, plus the summed mail count.
type DispatchResult struct {
	Campaigns []CampaignResult `json:"campaigns"`
	TotalSent int              `json:"total_sent"`
}

func (s *DispatchService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Run executes one dispatch pass: fetch pending campaigns in scheduled
// order, dispatch the due ones, write back status. One campaign failing does
// not stop the pass. Returns ErrNoCampaigns when nothing is pending and
// ErrDispatchInProgress when another pass holds the dispatch lock.
func (s *DispatchService) Run(ctx context.Context) (*DispatchResult, error) {
	release, ok, err := s.Campaigns.AcquireDispatchLock(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErrors.ErrDispatchInProgress
	}
	defer release()

	log := s.Log.With(slog.String("run_id", uuid.NewString()))
	started := time.Now()
	defer func() {
		metrics.DispatchDuration.Observe(time.Since(started).Seconds())
	}()

	campaigns, err := s.Campaigns.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	if len(campaigns) == 0 {
		log.Info("no campaigns found")
		return nil, appErrors.ErrNoCampaigns
	}

	result := &DispatchResult{Campaigns: []CampaignResult{}}
	deadline := s.now().Add(lookAheadWindow)

	for _, campaign := range campaigns {
		res, err := s.dispatchCampaign(ctx, log, campaign, deadline)
		if err != nil {
			log.Error("error processing campaign",
				slog.String("campaign_id", campaign.CampaignID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if res == nil {
			continue // not due, missing data, or nothing to send
		}
		result.Campaigns = append(result.Campaigns, *res)
		result.TotalSent += res.SentMails
	}

	return result, nil
}

// dispatchCampaign handles a single campaign. A nil result with a nil error
// means the campaign was skipped and stays pending for a later pass.
func (s *DispatchService) dispatchCampaign(ctx context.Context, log *slog.Logger, campaign *model.ScheduledCampaign, deadline time.Time) (*CampaignResult, error) {
	dueAt, err := parseSchedule(campaign.StartDate, campaign.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q %q: %w", campaign.StartDate, campaign.StartTime, err)
	}
	if !dueAt.Before(deadline) {
		log.Debug("campaign not due yet",
			slog.String("campaign_id", campaign.CampaignID),
			slog.Time("due_at", dueAt),
		)
		return nil, nil
	}

	recipients, err := s.Recipients.ListEligible(ctx, campaign.CampaignID)
	if err != nil {
		return nil, err
	}
	content, err := s.Contents.GetByID(ctx, campaign.ContentID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		log.Warn("no content found",
			slog.String("campaign_id", campaign.CampaignID),
			slog.String("content_id", campaign.ContentID),
		)
		return nil, nil
	}
	salesPerson, err := s.SalesPeople.GetByName(ctx, campaign.SalesPersonName)
	if err != nil {
		return nil, err
	}
	if salesPerson == nil {
		log.Warn("no sales person found",
			slog.String("campaign_id", campaign.CampaignID),
			slog.String("sales_person", campaign.SalesPersonName),
		)
		return nil, nil
	}

	msgs := make([]model.OutboundMessage, 0, len(recipients))
	for i := range recipients {
		rec := &recipients[i]
		msg, err := buildMessage(campaign.CampaignID, content, salesPerson, rec)
		if err != nil {
			log.Error("error processing individual record",
				slog.String("recipient", rec.EmailAddress),
				slog.String("error", err.Error()),
			)
			continue
		}
		msgs = append(msgs, msg)
	}

	if len(msgs) == 0 {
		log.Info("no emails to send for this campaign", slog.String("campaign_id", campaign.CampaignID))
		return nil, nil
	}

	if err := s.Sender.SendBulk(ctx, msgs); err != nil {
		// The campaign stays pending and is retried whole on the next pass.
		return nil, err
	}

	if _, err := s.Recipients.StampProcessed(ctx, campaign.CampaignID, campaign.ContentID, salesPerson.SalesPersonName); err != nil {
		return nil, err
	}
	if err := s.Campaigns.MarkProcessed(ctx, campaign.ID, len(msgs)); err != nil {
		return nil, err
	}

	metrics.CampaignsProcessed.Inc()
	metrics.MailsSent.Add(float64(len(msgs)))

	// Best effort from here: the campaign is already marked processed.
	if err := s.Sender.SendDispatchReport(ctx, campaign.CampaignID, campaign.ContentID, len(msgs), salesPerson.EmailID); err != nil {
		log.Error("dispatch report failed",
			slog.String("campaign_id", campaign.CampaignID),
			slog.String("error", err.Error()),
		)
	}
	if s.Events != nil {
		if err := s.Events.PublishDispatched(campaign.CampaignID, campaign.ContentID, len(msgs)); err != nil {
			log.Error("dispatch event publish failed",
				slog.String("campaign_id", campaign.CampaignID),
				slog.String("error", err.Error()),
			)
		}
	}

	log.Info("campaign dispatched",
		slog.String("campaign_id", campaign.CampaignID),
		slog.Int("sent_mails", len(msgs)),
	)

	return &CampaignResult{
		CampaignID: campaign.CampaignID,
		ContentID:  campaign.ContentID,
		SentMails:  len(msgs),
	}, nil
}

// buildMessage renders one recipient's mail.
func buildMessage(campaignID string, content *model.Content, salesPerson *model.SalesPerson, rec *model.Recipient) (model.OutboundMessage, error) {
	if rec.EmailAddress == "" {
		return model.OutboundMessage{}, fmt.Errorf("recipient has no email address")
	}

	subject := RenderTemplate(content.Subject, rec)
	body := RenderTemplate(content.Body, rec)
	html := wrapBody(body, rec, UnsubscribeLink(campaignID, rec.EmailAddress))

	return model.OutboundMessage{
		To:      rec.EmailAddress,
		From:    salesPerson.EmailID,
		Subject: subject,
		HTML:    html,
	}, nil
}

// UnsubscribeLink picks the branded endpoint for SUC campaigns, carrying the
// recipient address base64-encoded in the query string, and the generic
// endpoint for everything else.
func UnsubscribeLink(campaignID, emailAddress string) string {
	if strings.Contains(campaignID, "SUC") {
		return brandedUnsubscribeURL + base64.StdEncoding.EncodeToString([]byte(emailAddress))
	}
	return genericUnsubscribeURL
}

// wrapBody assembles the outgoing HTML: greeting, rendered body, the
// compliance disclaimer naming the recipient's company and address, and the
// unsubscribe anchor.
func wrapBody(body string, rec *model.Recipient, unsubscribeLink string) string {
	return fmt.Sprintf(`Hello %s,<br>
        %s<br><br>
        <strong>Disclaimer:</strong> As a CANSPAM and GDPR compliant organization, we would like to explain why you have received this email. We believe that %s has a legitimate interest in the White Label services that our domain is offering. Our research has identified your email address as the appropriate contact for the same.
        This email was sent to %s.
        If you don't want to hear from us again, please click on <u><a href="%s" style="color:blue;">Unsubscribe</a></u>.`,
		rec.FirstName, body, rec.Company, rec.EmailAddress, unsubscribeLink)
}

// parseSchedule combines the ISO start date and HH:MM start time into the
// campaign's due moment in server-local time.
func parseSchedule(startDate, startTime string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, startDate+" "+startTime, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable campaign schedule")
}
