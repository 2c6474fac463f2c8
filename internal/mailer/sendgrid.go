package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/unclebandit/mailerbot-backend/internal/model"
)

// Notification is the operational summary mail sent after a campaign is
// dispatched, and the /test-mail diagnostic payload.
type Notification struct {
	To      []string
	CC      []string
	From    string
	Subject string
	HTML    string
}

// ProviderClient is the transactional-email provider boundary. A chunk is
// one SendChunk call; pacing between chunks is the bulk sender's job.
type ProviderClient interface {
	SendChunk(ctx context.Context, msgs []model.OutboundMessage) error
	SendNotification(ctx context.Context, n Notification) error
}

// SendGridClient sends through the SendGrid v3 mail API.
type SendGridClient struct {
	client *sendgrid.Client
}

func NewSendGridClient(apiKey string) *SendGridClient {
	return &SendGridClient{client: sendgrid.NewSendClient(apiKey)}
}

// SendChunk delivers one chunk. The v3 mail-send endpoint takes one mail
// object per request and every message here carries its own subject and
// HTML, so a chunk maps to one request per message; the first failure aborts
// the chunk.
func (c *SendGridClient) SendChunk(ctx context.Context, msgs []model.OutboundMessage) error {
	for _, m := range msgs {
		v3 := sgmail.NewSingleEmail(
			sgmail.NewEmail("", m.From),
			m.Subject,
			sgmail.NewEmail("", m.To),
			"",
			m.HTML,
		)
		resp, err := c.client.SendWithContext(ctx, v3)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("sendgrid rejected mail to %s: status %d: %s", m.To, resp.StatusCode, resp.Body)
		}
	}
	return nil
}

// SendNotification sends a single mail to the notification TO/CC lists.
func (c *SendGridClient) SendNotification(ctx context.Context, n Notification) error {
	v3 := sgmail.NewV3Mail()
	v3.SetFrom(sgmail.NewEmail("", n.From))
	v3.Subject = n.Subject

	p := sgmail.NewPersonalization()
	for _, to := range n.To {
		p.AddTos(sgmail.NewEmail("", to))
	}
	for _, cc := range n.CC {
		p.AddCCs(sgmail.NewEmail("", cc))
	}
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/html", n.HTML))

	resp, err := c.client.SendWithContext(ctx, v3)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected notification: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

var _ ProviderClient = (*SendGridClient)(nil)
