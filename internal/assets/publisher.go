package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
)

// Publisher sends cleanup instructions to the asset cleanup topic.
type Publisher struct {
	topic *pubsub.Publisher
}

// NewPublisher wraps a Pub/Sub publisher handle.
func NewPublisher(topic *pubsub.Publisher) (*Publisher, error) {
	if topic == nil {
		return nil, errors.New("cleanup topic publisher is required")
	}
	return &Publisher{topic: topic}, nil
}

// PublishCleanup marshals the event and waits for the server ack.
func (p *Publisher) PublishCleanup(ctx context.Context, event CleanupEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal cleanup event: %w", err)
	}
	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_type": EventTypeCleanup,
			"store_id":   event.StoreID,
		},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish cleanup event: %w", err)
	}
	return nil
}
