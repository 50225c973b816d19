package assets

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/storelane/storelane-backend/pkg/logger"
)

type stubRemover struct {
	removed []string
	err     error
}

func (s *stubRemover) Remove(ctx context.Context, object string) error {
	if s.err != nil {
		return s.err
	}
	s.removed = append(s.removed, object)
	return nil
}

func buildCleanupMessage(t *testing.T, event CleanupEvent) *pubsub.Message {
	t.Helper()
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return &pubsub.Message{
		ID:         "msg-1",
		Data:       data,
		Attributes: map[string]string{"event_type": EventTypeCleanup},
	}
}

func testConsumer(remover objectRemover) *CleanupConsumer {
	return &CleanupConsumer{
		remover: remover,
		logg:    logger.New(logger.Options{ServiceName: "assets-test"}),
		now:     time.Now,
	}
}

func TestProcessRemovesObjectAndAcks(t *testing.T) {
	remover := &stubRemover{}
	c := testConsumer(remover)

	msg := buildCleanupMessage(t, CleanupEvent{Object: "store_images/WXYZ6789_old.png", StoreID: "WXYZ6789"})
	result := c.process(context.Background(), msg)
	if !result.ack || result.nack {
		t.Fatalf("expected ack, got %+v", result)
	}
	if len(remover.removed) != 1 || remover.removed[0] != "store_images/WXYZ6789_old.png" {
		t.Fatalf("unexpected removals %v", remover.removed)
	}
}

func TestProcessNacksOnRemovalFailure(t *testing.T) {
	remover := &stubRemover{err: errors.New("storage down")}
	c := testConsumer(remover)

	msg := buildCleanupMessage(t, CleanupEvent{Object: "store_images/x.png"})
	result := c.process(context.Background(), msg)
	if !result.nack {
		t.Fatalf("expected nack for transient failure, got %+v", result)
	}
}

func TestProcessAcksMalformedPayload(t *testing.T) {
	remover := &stubRemover{}
	c := testConsumer(remover)

	msg := &pubsub.Message{ID: "msg-2", Data: []byte("{not json")}
	result := c.process(context.Background(), msg)
	if !result.ack {
		t.Fatalf("malformed payloads must be dropped, got %+v", result)
	}
	if len(remover.removed) != 0 {
		t.Fatal("expected no removal attempts")
	}
}

func TestProcessAcksMissingObject(t *testing.T) {
	remover := &stubRemover{}
	c := testConsumer(remover)

	msg := buildCleanupMessage(t, CleanupEvent{Object: "   "})
	result := c.process(context.Background(), msg)
	if !result.ack {
		t.Fatalf("expected ack for empty object, got %+v", result)
	}
	if len(remover.removed) != 0 {
		t.Fatal("expected no removal attempts")
	}
}

func TestProcessSkipsUnrelatedEvents(t *testing.T) {
	remover := &stubRemover{}
	c := testConsumer(remover)

	msg := &pubsub.Message{
		ID:         "msg-3",
		Data:       []byte(`{}`),
		Attributes: map[string]string{"event_type": "something_else"},
	}
	result := c.process(context.Background(), msg)
	if !result.ack {
		t.Fatalf("expected ack for unrelated event, got %+v", result)
	}
	if len(remover.removed) != 0 {
		t.Fatal("expected no removal attempts")
	}
}
