package service

import (
	"context"
	"encoding/json"

	"equibot-be/internal/dto"
	"equibot-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains ingestion audit events off the in-process bus and
// writes them to the isolated audit log.
type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	auditLogger logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	auditLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		auditLogger: auditLogger,
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
	var payload dto.IngestionEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.auditLogger.Error("ingestion-audit", "failed to unmarshal audit event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite redelivery
		return
	}

	cs.auditLogger.Info("ingestion-audit", "documents ingested", map[string]interface{}{
		"tenant_id":    payload.TenantId,
		"dataset_type": payload.DatasetType,
		"count":        payload.Count,
		"total_count":  payload.TotalCount,
		"occurred_at":  payload.OccurredAt,
	})
	msg.Ack()
}
