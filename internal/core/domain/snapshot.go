package domain

import (
	"encoding/json"
	"time"
)

const (
	// SnapshotTickets is the category of persisted ticket query results.
	SnapshotTickets = "left_ticket"
	// SnapshotSchedule is the category of persisted schedule results.
	SnapshotSchedule = "train_schedule"
	// SnapshotFare is the category of persisted fare resolutions.
	SnapshotFare = "train_price"
)

// Snapshot is a persisted query result, unique by date, query key and category.
type Snapshot struct {
	Date      string          `json:"date"`
	QueryKey  string          `json:"query_key"`
	Category  string          `json:"category"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// CleanupReport counts what a store cleanup removed.
type CleanupReport struct {
	RunNumberFiles int
	Snapshots      int
}
