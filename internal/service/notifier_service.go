package service

import (
	"context"
	"encoding/json"

	"ats-scheduler-be/internal/pkg/logger"
	"ats-scheduler-be/internal/websocket"
	"ats-scheduler-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type INotifierService interface {
	Consume(ctx context.Context) error
}

// notifierService subscribes to outcome events and forwards them to the
// dashboard hub.
type notifierService struct {
	pubSub *gochannel.GoChannel
	hub    *websocket.Hub
	log    logger.ILogger
}

func NewNotifierService(pubSub *gochannel.GoChannel, hub *websocket.Hub, log logger.ILogger) INotifierService {
	return &notifierService{
		pubSub: pubSub,
		hub:    hub,
		log:    log,
	}
}

func (ns *notifierService) Consume(ctx context.Context) error {
	messages, err := ns.pubSub.Subscribe(ctx, events.TopicOutcomeEvents)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ns.processMessage(msg)
		}
	}()

	return nil
}

func (ns *notifierService) processMessage(msg *message.Message) {
	var event events.OutcomeEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		ns.log.Warn("Notifier", "Dropping malformed outcome event", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack malformed messages, retrying will never fix them.
		msg.Ack()
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type": "outcome_event",
		"data": event,
	})
	if err != nil {
		msg.Ack()
		return
	}

	ns.hub.Broadcast(payload)
	ns.log.Debug("Notifier", "Outcome event forwarded to dashboards", map[string]interface{}{
		"kind":  event.Kind,
		"email": event.CandidateEmail,
	})
	msg.Ack()
}
