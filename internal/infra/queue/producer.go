package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadCapturedPayload is what the public capture endpoint publishes; the
// worker turns it into an AI reply plus an owner notification, off the
// request path.
type LeadCapturedPayload struct {
	LeadID    string `json:"lead_id"`
	UserID    string `json:"user_id"`
	LeadName  string `json:"lead_name"`
	LeadEmail string `json:"lead_email"`
	Service   string `json:"service,omitempty"`
	Origin    string `json:"origin"`
}

type ProducerInterface interface {
	PublishLeadCaptured(ctx context.Context, payload LeadCapturedPayload) error
}

type Producer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) PublishLeadCaptured(ctx context.Context, payload LeadCapturedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish lead event: %w", err)
	}
	return nil
}
