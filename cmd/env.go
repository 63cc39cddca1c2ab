package main

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospector-cli/internal/contacts"
	"github.com/sells-group/prospector-cli/internal/ingest"
	"github.com/sells-group/prospector-cli/internal/tracker"
)

// env bundles the shared runtime pieces commands wire up: the contact
// snapshot cache and the lifecycle tracker.
type env struct {
	Cache   *contacts.Cache
	Tracker *tracker.Tracker
}

func (e *env) Close() {
	if e.Tracker != nil {
		_ = e.Tracker.Close()
	}
}

// initEnv builds the cache and tracker from config. The snapshot is loaded
// lazily on first use, not here.
func initEnv() (*env, error) {
	cache := contacts.NewCache(ingest.NewCSVSource(cfg.Data.CSVPath))

	store, err := trackerStore()
	if err != nil {
		return nil, err
	}

	return &env{
		Cache:   cache,
		Tracker: tracker.New(store, cache),
	}, nil
}

func trackerStore() (tracker.Store, error) {
	switch cfg.Tracker.Driver {
	case "", "json":
		return tracker.NewFileStore(cfg.Tracker.Path), nil
	case "sqlite":
		st, err := tracker.NewSQLite(cfg.Tracker.Path)
		if err != nil {
			return nil, eris.Wrap(err, "cmd: open tracker store")
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown tracker driver %q (want json or sqlite)", cfg.Tracker.Driver)
	}
}
