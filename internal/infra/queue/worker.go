package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/usecase"
)

// MessageGenerator is the slice of the lead-message use case the worker
// needs.
type MessageGenerator interface {
	Execute(ctx context.Context, input usecase.GenerateMessageInput) (*usecase.GenerateMessageOutput, error)
}

// Notifier sends the new-lead email to the business owner.
type Notifier interface {
	SendLeadNotification(to, ownerName, leadName, leadEmail, service string) error
}

type Worker struct {
	Channel   *amqp.Channel
	Generator MessageGenerator
	Profiles  entity.ProfileRepositoryInterface
	Mailer    Notifier
}

func NewWorker(ch *amqp.Channel, generator MessageGenerator, profiles entity.ProfileRepositoryInterface, mailer Notifier) *Worker {
	return &Worker{Channel: ch, Generator: generator, Profiles: profiles, Mailer: mailer}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("[WORKER] failed to register consumer: %s", err)
	}

	for d := range msgs {
		var payload LeadCapturedPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			log.Printf("[WORKER] malformed payload, dropping: %s", err)
			// No requeue; a malformed message never gets better.
			d.Nack(false, false)
			continue
		}

		log.Printf("[WORKER] processing lead %s (%s)", payload.LeadID, payload.Origin)

		if err := w.process(context.Background(), payload); err != nil {
			log.Printf("[WORKER] lead %s failed: %s", payload.LeadID, err)
			d.Nack(false, false)
			continue
		}
		d.Ack(false)
	}
}

func (w *Worker) process(ctx context.Context, payload LeadCapturedPayload) error {
	// The generated reply is the part worth a retry through the DLQ. The
	// notification email is best effort.
	_, err := w.Generator.Execute(ctx, usecase.GenerateMessageInput{
		LeadID: payload.LeadID,
		Type:   usecase.MessageTypeInitial,
	})
	if err != nil {
		return err
	}

	if w.Mailer == nil {
		return nil
	}
	profile, err := w.Profiles.FindByID(ctx, payload.UserID)
	if err != nil {
		log.Printf("[WORKER] owner profile %s not found, skipping notification", payload.UserID)
		return nil
	}
	if err := w.Mailer.SendLeadNotification(
		profile.Email, profile.BusinessName, payload.LeadName, payload.LeadEmail, payload.Service,
	); err != nil {
		log.Printf("[WORKER] notification email failed for lead %s: %s", payload.LeadID, err)
	}
	return nil
}
