package contacts

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sells-group/prospector-cli/internal/model"
)

// Loader supplies one full ingestion pass over the data source.
type Loader interface {
	Load(ctx context.Context) ([]model.ContactRecord, error)
}

// Cache holds the current snapshot and loads it at most once until
// explicitly invalidated. Concurrent cold loads are coalesced so the
// backing source is never read per-query.
type Cache struct {
	loader Loader

	mu   sync.RWMutex
	snap *Snapshot

	group singleflight.Group
}

// NewCache creates a Cache over the given loader. No load happens until the
// first Get.
func NewCache(loader Loader) *Cache {
	return &Cache{loader: loader}
}

// Get returns the cached snapshot, loading it if needed.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}
	return c.load(ctx)
}

// Reload forces a fresh ingestion pass and swaps the snapshot on success.
// On failure the previous snapshot (if any) is kept.
func (c *Cache) Reload(ctx context.Context) (*Snapshot, error) {
	return c.load(ctx)
}

// Invalidate drops the cached snapshot; the next Get reloads.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

// ContactByID resolves a contact against the cached snapshot. Implements
// the tracker's ContactDirectory.
func (c *Cache) ContactByID(ctx context.Context, id string) (*model.ContactRecord, bool, error) {
	snap, err := c.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	r, ok := snap.ByID(id)
	return r, ok, nil
}

func (c *Cache) load(ctx context.Context) (*Snapshot, error) {
	v, err, _ := c.group.Do("snapshot", func() (any, error) {
		records, err := c.loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		snap := NewSnapshot(records)
		c.mu.Lock()
		c.snap = snap
		c.mu.Unlock()
		zap.L().Info("contacts: snapshot loaded", zap.Int("records", snap.Len()))
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}
