package assets

import "time"

// EventTypeCleanup tags asset cleanup instructions on the wire.
const EventTypeCleanup = "asset_cleanup"

// CleanupEvent instructs the cleanup worker to remove an object from the
// asset store. Removal is best-effort: the store record was already updated
// when this event is published.
type CleanupEvent struct {
	Object     string    `json:"object"`
	StoreID    string    `json:"store_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}
