// Package audit defines the domain-side contract for recording an audit
// trail of administrative mutations. The persistent implementation lives in
// infrastructure/storage/postgres.
package audit

import (
	"context"
	"encoding/json"
	"time"
)

// Action identifies the kind of audited mutation.
type Action string

const (
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDeactivate  Action = "deactivate"
	ActionReactivate  Action = "reactivate"
	ActionStockAdjust Action = "stock_adjust"
	ActionPurge       Action = "purge"
)

// Recorder records audit entries. The acting user is taken from context.
type Recorder interface {
	Record(ctx context.Context, entityType string, entityID int64, action Action, changes map[string]any) error
}

// Entry is one recorded mutation of an entity.
type Entry struct {
	ID        int64           `json:"id"`
	Action    Action          `json:"action"`
	UserID    int64           `json:"user_id"`
	Changes   json.RawMessage `json:"changes"`
	CreatedAt time.Time       `json:"created_at"`
}

// Reader retrieves recorded history for an entity, newest first.
type Reader interface {
	EntityHistory(ctx context.Context, entityType string, entityID int64, limit int) ([]Entry, error)
}

// Noop discards all entries. Used in tests and when auditing is disabled.
type Noop struct{}

func (Noop) Record(context.Context, string, int64, Action, map[string]any) error { return nil }
