package models

import "time"

// ActivityStatus is the lifecycle state of a logged action attempt.
type ActivityStatus string

const (
	ActivityPending ActivityStatus = "pending"
	ActivitySuccess ActivityStatus = "success"
	ActivityFailed  ActivityStatus = "failed"
)

// ActivityLog records one dispatched action. An entry is created pending and
// updated exactly once to a terminal status; it never regresses.
type ActivityLog struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"user_id"`
	Action    ActionKind     `json:"action"`
	Target    string         `json:"target"`
	Status    ActivityStatus `json:"status"`
	Message   string         `json:"message,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
