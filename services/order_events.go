package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yashrajoria/storefront/models"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"
)

// Order event types.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// OrderEvent is the JSON payload published for order lifecycle changes.
type OrderEvent struct {
	Type       string             `json:"type"`
	ID         string             `json:"id"`
	OrderID    string             `json:"order_id"`
	UserID     string             `json:"user_id"`
	Status     string             `json:"status"`
	Total      int64              `json:"total"`
	Items      []models.OrderItem `json:"items,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

func newOrderEvent(eventType string, order *models.Order) OrderEvent {
	return OrderEvent{
		Type:       eventType,
		ID:         order.ID.Hex(),
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		Status:     order.Status,
		Total:      order.Total,
		Items:      order.Items,
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher publishes order events. Publishing is best-effort: callers
// log failures and carry on.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

// SNSPublisher is a minimal interface for publishing messages to SNS.
type SNSPublisher interface {
	Publish(ctx context.Context, topicArn, eventType string, message []byte) error
}

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SNSClient struct {
	client snsAPI
}

func NewSNSClient(cfg sdkaws.Config, endpoint string) *SNSClient {
	return &SNSClient{client: sns.NewFromConfig(cfg, func(o *sns.Options) {
		if endpoint != "" {
			o.BaseEndpoint = sdkaws.String(endpoint)
		}
	})}
}

// Publish publishes a raw message to the given SNS topic ARN with an
// event_type attribute subscribers can filter on.
func (s *SNSClient) Publish(ctx context.Context, topicArn, eventType string, message []byte) error {
	if topicArn == "" {
		return fmt.Errorf("empty topicArn")
	}
	input := &sns.PublishInput{
		TopicArn: sdkaws.String(topicArn),
		Message:  sdkaws.String(string(message)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"event_type": {DataType: sdkaws.String("String"), StringValue: sdkaws.String(eventType)},
		},
	}
	if _, err := s.client.Publish(ctx, input); err != nil {
		return fmt.Errorf("sns publish failed for topic %s: %w", topicArn, err)
	}
	return nil
}

// SNSOrderEvents publishes OrderEvents to a single SNS topic.
type SNSOrderEvents struct {
	publisher SNSPublisher
	topicArn  string
}

func NewSNSOrderEvents(publisher SNSPublisher, topicArn string) *SNSOrderEvents {
	return &SNSOrderEvents{publisher: publisher, topicArn: topicArn}
}

func (p *SNSOrderEvents) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}
	if err := p.publisher.Publish(ctx, p.topicArn, event.Type, body); err != nil {
		return err
	}
	zap.L().Debug("Order event published", zap.String("type", event.Type), zap.String("order_id", event.OrderID))
	return nil
}
