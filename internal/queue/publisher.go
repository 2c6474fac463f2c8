package queue

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/streadway/amqp"
)

const dispatchQueue = "campaign_dispatches"

// Publisher emits one event per dispatched campaign so downstream consumers
// (reporting, CRM sync) can react without polling the store. Publishing is
// best effort; the dispatch loop never depends on it.
type Publisher struct {
	URL string
	Log *slog.Logger
}

type dispatchedEvent struct {
	CampaignID   string    `json:"campaign_id"`
	ContentID    string    `json:"content_id"`
	SentMails    int       `json:"sent_mails"`
	DispatchedAt time.Time `json:"dispatched_at"`
}

func (p *Publisher) PublishDispatched(campaignID, contentID string, sentMails int) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		dispatchQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	body, err := json.Marshal(dispatchedEvent{
		CampaignID:   campaignID,
		ContentID:    contentID,
		SentMails:    sentMails,
		DispatchedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	if err := ch.Publish(
		"",
		q.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		return err
	}

	p.Log.Info("dispatch event published",
		slog.String("campaign_id", campaignID),
		slog.Int("sent_mails", sentMails),
	)
	return nil
}
