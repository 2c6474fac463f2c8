package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	appErrors "github.com/unclebandit/mailerbot-backend/internal/errors"
	"github.com/unclebandit/mailerbot-backend/internal/model"
)

const (
	DefaultChunkSize  = 150
	DefaultChunkDelay = 5 * time.Second
)

// Sender is what the dispatch loop needs from the mail layer.
type Sender interface {
	SendBulk(ctx context.Context, msgs []model.OutboundMessage) error
	SendDispatchReport(ctx context.Context, campaignID, contentID string, mailCount int, senderAddr string) error
}

// BulkSender pushes rendered messages through a ProviderClient in fixed-size
// chunks, waiting a fixed delay between chunks to stay inside the provider
// rate limit.
type BulkSender struct {
	Client     ProviderClient
	ChunkSize  int
	ChunkDelay time.Duration
	ReportTo   []string
	ReportCC   []string
	ReportFrom string
	Log        *slog.Logger
}

func (s *BulkSender) chunkSize() int {
	if s.ChunkSize > 0 {
		return s.ChunkSize
	}
	return DefaultChunkSize
}

func (s *BulkSender) chunkDelay() time.Duration {
	if s.ChunkDelay > 0 {
		return s.ChunkDelay
	}
	return DefaultChunkDelay
}

// SendBulk sends msgs in chunks. A chunk failure aborts the whole send;
// there is no partial-chunk retry here, the campaign is retried as a whole
// on the next pass.
func (s *BulkSender) SendBulk(ctx context.Context, msgs []model.OutboundMessage) error {
	if len(msgs) == 0 {
		s.Log.Warn("no emails provided to bulk send")
		return appErrors.NewEmailSendingError("no emails to send", nil)
	}

	size := s.chunkSize()
	limiter := rate.NewLimiter(rate.Every(s.chunkDelay()), 1)

	for start := 0; start < len(msgs); start += size {
		end := start + size
		if end > len(msgs) {
			end = len(msgs)
		}
		chunk := msgs[start:end]

		if err := limiter.Wait(ctx); err != nil {
			return appErrors.NewEmailSendingError("bulk send interrupted", err)
		}
		if err := s.Client.SendChunk(ctx, chunk); err != nil {
			s.Log.Error("error sending bulk emails",
				slog.Int("chunk_size", len(chunk)),
				slog.Int("email_count", len(msgs)),
				slog.String("error", err.Error()),
			)
			return appErrors.NewEmailSendingError("failed to send bulk emails", err)
		}
		s.Log.Info("sent mail chunk", slog.Int("chunk_size", len(chunk)))
	}

	s.Log.Info(fmt.Sprintf("%d mails sent successfully", len(msgs)))
	return nil
}

// SendDispatchReport mails the operations team a summary of the pass that
// just completed. Failures here are the caller's to log; the campaign's
// processed status is never rolled back for a missing report.
func (s *BulkSender) SendDispatchReport(ctx context.Context, campaignID, contentID string, mailCount int, senderAddr string) error {
	html := fmt.Sprintf(`Hello Team,
        <br><br>
        Here are the mail details:
        <br><br>
        Campaign Name : %s
        <br>
        Content ID : %s
        <br>
        Sender : %s
        <br>
        Sent Mails : %d
        <br><br>
        Thanks & regards,
        Team RPA`, campaignID, contentID, senderAddr, mailCount)

	n := Notification{
		To:      s.ReportTo,
		CC:      s.ReportCC,
		From:    s.ReportFrom,
		Subject: "Mailer Bot - Info Mail",
		HTML:    html,
	}
	if err := s.Client.SendNotification(ctx, n); err != nil {
		return appErrors.NewEmailSendingError("failed to send dispatch report", err)
	}
	s.Log.Info("dispatch report sent", slog.String("campaign_id", campaignID))
	return nil
}

var _ Sender = (*BulkSender)(nil)
