package assets

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/storelane/storelane-backend/pkg/logger"
	"github.com/storelane/storelane-backend/pkg/metrics"
)

const cleanupJobName = "asset-cleanup"

type objectRemover interface {
	Remove(ctx context.Context, object string) error
}

// CleanupConsumer drains the asset cleanup subscription and deletes the
// referenced objects from the asset store.
type CleanupConsumer struct {
	remover      objectRemover
	subscription *pubsub.Subscriber
	logg         *logger.Logger
	jobs         *metrics.WorkerJobMetrics
	now          func() time.Time
}

// NewCleanupConsumer wires the dependencies for asset removal.
func NewCleanupConsumer(remover objectRemover, subscription *pubsub.Subscriber, logg *logger.Logger, jobs *metrics.WorkerJobMetrics) (*CleanupConsumer, error) {
	if remover == nil {
		return nil, errors.New("object remover is required")
	}
	if subscription == nil {
		return nil, errors.New("cleanup subscription is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &CleanupConsumer{
		remover:      remover,
		subscription: subscription,
		logg:         logg,
		jobs:         jobs,
		now:          time.Now,
	}, nil
}

// Run processes messages until the context is canceled or the subscription errors.
func (c *CleanupConsumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *CleanupConsumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	start := c.now()
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": msg.Attributes["event_type"],
	})

	if eventType := msg.Attributes["event_type"]; eventType != "" && eventType != EventTypeCleanup {
		c.logg.Info(logCtx, "skipping unrelated event")
		return processResult{ack: true}
	}

	var event CleanupEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		// malformed payloads never become deliverable, drop them
		c.logg.Error(logCtx, "failed to unmarshal cleanup event", err)
		c.jobs.IncFailure(cleanupJobName)
		return processResult{ack: true}
	}

	if strings.TrimSpace(event.Object) == "" {
		c.logg.Error(logCtx, "cleanup event missing object", errors.New("empty object"))
		c.jobs.IncFailure(cleanupJobName)
		return processResult{ack: true}
	}

	logCtx = c.logg.WithFields(logCtx, map[string]any{
		"object":   event.Object,
		"store_id": event.StoreID,
	})

	if err := c.remover.Remove(ctx, event.Object); err != nil {
		// transient storage failures are retried via redelivery
		c.logg.Error(logCtx, "failed to remove asset", err)
		c.jobs.IncFailure(cleanupJobName)
		return processResult{nack: true}
	}

	c.jobs.IncSuccess(cleanupJobName)
	c.jobs.ObserveDuration(cleanupJobName, c.now().Sub(start))
	c.logg.Info(logCtx, "asset removed")
	return processResult{ack: true}
}
