// Package tracker maintains per-contact lifecycle state: an explicit funnel
// state machine with an append-only history and interaction log, persisted
// independently of the ingested records.
package tracker

import (
	"context"

	"github.com/sells-group/prospector-cli/internal/model"
)

// Store persists the whole tracking document. Both methods move the entire
// store: every mutation is a whole-store read-modify-write, serialized by
// the Tracker. Unsuitable for high-volume concurrent writers by design.
type Store interface {
	Load(ctx context.Context) (*model.TrackingStore, error)
	Save(ctx context.Context, ts *model.TrackingStore) error
	Close() error
}
