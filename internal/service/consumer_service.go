package service

import (
	"context"
	"encoding/json"
	"log"

	"po-intake-be/internal/dto"
	"po-intake-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains completed submissions off the internal bus and does
// the slow follow-ups the HTTP request should not wait on, currently the
// receipt email.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	mailer    mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		mailer:    emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.SubmissionCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal completion message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if payload.ContactEmail == "" || cs.mailer == nil {
		msg.Ack()
		return
	}

	err := cs.mailer.SendSubmissionReceipt(
		payload.ContactEmail,
		payload.CorrelationId.String(),
		payload.SubmitterKind,
		payload.Files,
	)
	if err != nil {
		log.Printf("[ERROR] Failed to send receipt for %s: %v", payload.CorrelationId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	log.Printf("[INFO] Receipt sent for submission %s", payload.CorrelationId)
	msg.Ack()
}
